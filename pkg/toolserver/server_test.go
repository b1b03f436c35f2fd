package toolserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/photopuller/pkg/engine"
)

type response struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// serve runs the given request lines through a fresh server
func serve(t *testing.T, lines ...string) []response {
	t.Helper()
	return serveWith(t, New(engine.NewCoordinator(nil, nil), nil, "test"), lines...)
}

func serveWith(t *testing.T, s *Server, lines ...string) []response {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, s.Serve(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out))

	var responses []response
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var r response
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r), sc.Text())
		responses = append(responses, r)
	}
	return responses
}

func call(id int, tool string, args interface{}) string {
	data, _ := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  "tools/call",
		"params":  map[string]interface{}{"name": tool, "arguments": args},
	})
	return string(data)
}

// toolText decodes the text content of a tool result
func toolText(t *testing.T, r response) (map[string]interface{}, bool) {
	t.Helper()
	require.Nil(t, r.Error)
	var result ToolResult
	require.NoError(t, json.Unmarshal(r.Result, &result))
	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &payload))
	return payload, result.IsError
}

func mediaTree(t *testing.T, photos int) string {
	t.Helper()
	root := t.TempDir()
	for i := 0; i < photos; i++ {
		path := filepath.Join(root, "Pictures", fmt.Sprintf("img%02d.jpg", i))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{byte(i)}, 2048), 0644))
	}
	return root
}

func TestServe_InitializeAndList(t *testing.T) {
	responses := serve(t,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	)

	require.Len(t, responses, 2)
	assert.JSONEq(t, "1", string(responses[0].ID))
	assert.Contains(t, string(responses[0].Result), `"name":"photopuller"`)

	var list struct {
		Tools []Tool `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(responses[1].Result, &list))
	var names []string
	for _, tool := range list.Tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{
		ToolScan, ToolGetScanStats, ToolCopyFiles, ToolGetCopyStats,
		ToolAddExclusion, ToolRemoveExclusion, ToolClearExclusions,
	}, names)
	assert.Equal(t, []string{"source_path"}, list.Tools[0].InputSchema.Required)
}

func TestServe_ProtocolErrors(t *testing.T) {
	responses := serve(t,
		`not json at all`,
		`{"jsonrpc":"2.0","id":"a","method":"resources/list"}`,
		call(2, "photopuller_format_disk", nil),
		call(3, ToolScan, map[string]interface{}{}),
	)

	require.Len(t, responses, 3, "invalid line skipped")
	assert.Equal(t, CodeMethodNotFound, responses[0].Error.Code)
	assert.JSONEq(t, `"a"`, string(responses[0].ID))
	assert.Equal(t, CodeInternalError, responses[1].Error.Code)
	assert.Contains(t, responses[1].Error.Message, "unknown tool")
	assert.Equal(t, CodeInternalError, responses[2].Error.Code)
	assert.Contains(t, responses[2].Error.Message, "source_path")
}

func TestServe_ScanAndStats(t *testing.T) {
	root := mediaTree(t, 12)

	responses := serve(t,
		call(1, ToolScan, map[string]interface{}{"source_path": root}),
		call(2, ToolGetScanStats, nil),
		call(3, ToolAddExclusion, map[string]interface{}{"folder_path": filepath.Join(root, "Pictures", "img0")}),
		call(4, ToolGetScanStats, nil),
		call(5, ToolRemoveExclusion, map[string]interface{}{"folder_path": filepath.Join(root, "Pictures", "img0")}),
		call(6, ToolClearExclusions, nil),
	)
	require.Len(t, responses, 6)

	scan, isErr := toolText(t, responses[0])
	assert.False(t, isErr)
	assert.Equal(t, "success", scan["status"])
	assert.Equal(t, float64(12), scan["files_found"])
	assert.Len(t, scan["sample_files"], sampleSize)

	stats, _ := toolText(t, responses[1])
	assert.Equal(t, float64(12), stats["total_files"])
	assert.Equal(t, float64(12*2048), stats["total_size_bytes"])

	added, _ := toolText(t, responses[2])
	assert.Equal(t, []interface{}{filepath.Join(root, "Pictures", "img0")}, added["excluded_folders"])

	// img00 .. img09 share the img0 prefix
	stats, _ = toolText(t, responses[3])
	assert.Equal(t, float64(2), stats["total_files"])
	assert.Equal(t, float64(10), stats["excluded_count"])

	removed, _ := toolText(t, responses[4])
	assert.Contains(t, removed["message"], "Removed exclusion")

	cleared, _ := toolText(t, responses[5])
	assert.Equal(t, "All exclusions cleared", cleared["message"])
}

func TestServe_ScanErrors(t *testing.T) {
	responses := serve(t,
		call(1, ToolScan, map[string]interface{}{"source_path": filepath.Join(t.TempDir(), "missing")}),
		call(2, ToolScan, map[string]interface{}{"source_path": t.TempDir(), "scan_photos": false, "scan_videos": false, "scan_pdfs": false}),
	)

	for _, r := range responses {
		payload, isErr := toolText(t, r)
		assert.True(t, isErr)
		assert.Equal(t, "error", payload["status"])
	}
}

func TestServe_CopyFiles(t *testing.T) {
	root := mediaTree(t, 3)
	dest := filepath.Join(t.TempDir(), "out")

	s := New(engine.NewCoordinator(nil, nil), nil, "test")
	responses := serveWith(t, s,
		call(1, ToolCopyFiles, map[string]interface{}{"destination": dest}),
		call(2, ToolScan, map[string]interface{}{"source_path": root}),
		call(3, ToolCopyFiles, map[string]interface{}{"destination": dest, "dry_run": true}),
		call(4, ToolCopyFiles, map[string]interface{}{"destination": dest, "organize_method": "source"}),
		call(5, ToolGetCopyStats, nil),
		call(6, ToolCopyFiles, map[string]interface{}{"destination": dest, "organize_method": "colour"}),
	)
	require.Len(t, responses, 6)

	noScan, isErr := toolText(t, responses[0])
	assert.True(t, isErr)
	assert.Contains(t, noScan["error"], "scan")

	dry, isErr := toolText(t, responses[2])
	assert.False(t, isErr)
	assert.Equal(t, true, dry["dry_run"])
	assert.Equal(t, float64(3), dry["files_processed"])
	sample := dry["sample_results"].([]interface{})
	assert.Equal(t, "would_copy", sample[0].(map[string]interface{})["status"])

	copied, _ := toolText(t, responses[3])
	assert.Equal(t, float64(3), copied["copy_stats"].(map[string]interface{})["copied"])

	stats, _ := toolText(t, responses[4])
	assert.Equal(t, float64(3), stats["total"])

	_, isErr = toolText(t, responses[5])
	assert.True(t, isErr)
}

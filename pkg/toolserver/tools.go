package toolserver

import (
	"context"
	"encoding/json"
	"sort"

	"gitlab.com/tozd/go/errors"

	"github.com/sdejongh/photopuller/pkg/engine"
	"github.com/sdejongh/photopuller/pkg/models"
)

// sampleSize bounds the file and result samples in tool responses
const sampleSize = 10

// Tool names
const (
	ToolScan            = "photopuller_scan"
	ToolGetScanStats    = "photopuller_get_scan_stats"
	ToolCopyFiles       = "photopuller_copy_files"
	ToolGetCopyStats    = "photopuller_get_copy_stats"
	ToolAddExclusion    = "photopuller_add_exclusion"
	ToolRemoveExclusion = "photopuller_remove_exclusion"
	ToolClearExclusions = "photopuller_clear_exclusions"
)

var errUnknownTool = errors.Base("unknown tool")

var noArguments = InputSchema{Type: "object", Properties: map[string]Property{}, Required: []string{}}

// Tools returns the definitions served by tools/list
func Tools() []Tool {
	return []Tool{
		{
			Name:        ToolScan,
			Description: "Scan a drive or directory for photos, videos, and PDFs",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"source_path":      {Type: "string", Description: "Path to scan (e.g., 'C:\\' or 'D:\\Photos')"},
					"scan_photos":      {Type: "boolean", Description: "Include photos in scan", Default: true},
					"scan_videos":      {Type: "boolean", Description: "Include videos in scan", Default: true},
					"scan_pdfs":        {Type: "boolean", Description: "Include PDFs in scan", Default: true},
					"excluded_folders": {Type: "array", Description: "List of folder paths to exclude from scan", Items: &Property{Type: "string"}, Default: []string{}},
				},
				Required: []string{"source_path"},
			},
		},
		{
			Name:        ToolGetScanStats,
			Description: "Get statistics about the last scan operation",
			InputSchema: noArguments,
		},
		{
			Name:        ToolCopyFiles,
			Description: "Copy scanned files to a destination directory with organization",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"destination":     {Type: "string", Description: "Destination directory path"},
					"organize_method": {Type: "string", Description: "Organization method: 'date' (Year/Month) or 'source' (by drive)", Enum: []string{"date", "source"}, Default: "date"},
					"dry_run":         {Type: "boolean", Description: "If true, simulate copying without actually copying files", Default: false},
				},
				Required: []string{"destination"},
			},
		},
		{
			Name:        ToolGetCopyStats,
			Description: "Get statistics about the last copy operation",
			InputSchema: noArguments,
		},
		{
			Name:        ToolAddExclusion,
			Description: "Add a folder to the exclusion list",
			InputSchema: InputSchema{
				Type:       "object",
				Properties: map[string]Property{"folder_path": {Type: "string", Description: "Path to folder to exclude"}},
				Required:   []string{"folder_path"},
			},
		},
		{
			Name:        ToolRemoveExclusion,
			Description: "Remove a folder from the exclusion list",
			InputSchema: InputSchema{
				Type:       "object",
				Properties: map[string]Property{"folder_path": {Type: "string", Description: "Path to folder to remove from exclusions"}},
				Required:   []string{"folder_path"},
			},
		},
		{
			Name:        ToolClearExclusions,
			Description: "Clear all excluded folders",
			InputSchema: noArguments,
		},
	}
}

type scanArgs struct {
	SourcePath      string   `json:"source_path"`
	ScanPhotos      *bool    `json:"scan_photos"`
	ScanVideos      *bool    `json:"scan_videos"`
	ScanPDFs        *bool    `json:"scan_pdfs"`
	ExcludedFolders []string `json:"excluded_folders"`
}

type copyArgs struct {
	Destination    string `json:"destination"`
	OrganizeMethod string `json:"organize_method"`
	DryRun         bool   `json:"dry_run"`
}

type folderArgs struct {
	FolderPath string `json:"folder_path"`
}

type scanPayload struct {
	Status      string             `json:"status"`
	FilesFound  int                `json:"files_found"`
	Stats       models.ScanSummary `json:"stats"`
	SampleFiles []string           `json:"sample_files"`
}

type copyPayload struct {
	Status         string              `json:"status"`
	DryRun         bool                `json:"dry_run"`
	FilesProcessed int                 `json:"files_processed"`
	CopyStats      models.CopyStats    `json:"copy_stats"`
	SampleResults  []models.CopyResult `json:"sample_results"`
}

type exclusionPayload struct {
	Status          string   `json:"status"`
	Message         string   `json:"message"`
	ExcludedFolders []string `json:"excluded_folders,omitempty"`
}

type errorPayload struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// callTool runs one tool. A returned error is a protocol failure; tool
// failures come back as a ToolResult with IsError set.
func (s *Server) callTool(ctx context.Context, name string, raw json.RawMessage) (*ToolResult, error) {
	switch name {
	case ToolScan:
		var args scanArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		if args.SourcePath == "" {
			return nil, errors.New("missing required argument: source_path")
		}
		return s.scan(ctx, args), nil

	case ToolGetScanStats:
		return textResult(s.coordinator.ScanStats()), nil

	case ToolCopyFiles:
		var args copyArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		if args.Destination == "" {
			return nil, errors.New("missing required argument: destination")
		}
		return s.copyFiles(ctx, args), nil

	case ToolGetCopyStats:
		return textResult(s.coordinator.CopyStats()), nil

	case ToolAddExclusion, ToolRemoveExclusion:
		var args folderArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		if args.FolderPath == "" {
			return errorResult(errors.New("missing required argument: folder_path")), nil
		}
		message := "Added exclusion: " + args.FolderPath
		if name == ToolAddExclusion {
			s.coordinator.AddExclusion(args.FolderPath)
		} else {
			s.coordinator.RemoveExclusion(args.FolderPath)
			message = "Removed exclusion: " + args.FolderPath
		}
		return textResult(exclusionPayload{
			Status:          "success",
			Message:         message,
			ExcludedFolders: sortedExclusions(s.coordinator),
		}), nil

	case ToolClearExclusions:
		s.coordinator.ClearExclusions()
		return textResult(exclusionPayload{Status: "success", Message: "All exclusions cleared"}), nil

	default:
		return nil, errors.WithDetails(errors.Errorf("%w: %s", errUnknownTool, name), "tool", name)
	}
}

func (s *Server) scan(ctx context.Context, args scanArgs) *ToolResult {
	filter := models.TypeFilter{
		Photos: boolOr(args.ScanPhotos, true),
		Videos: boolOr(args.ScanVideos, true),
		PDFs:   boolOr(args.ScanPDFs, true),
	}

	session, err := s.coordinator.Scan(ctx, args.SourcePath, filter, args.ExcludedFolders, nil)
	if err != nil {
		return errorResult(err)
	}

	files := session.Files()
	sample := make([]string, 0, sampleSize)
	for i := 0; i < len(files) && i < sampleSize; i++ {
		sample = append(sample, files[i].Path)
	}

	return textResult(scanPayload{
		Status:      "success",
		FilesFound:  len(files),
		Stats:       session.ScanStats(),
		SampleFiles: sample,
	})
}

func (s *Server) copyFiles(ctx context.Context, args copyArgs) *ToolResult {
	mode := models.OrganizeByDate
	if args.OrganizeMethod != "" {
		parsed, err := models.ParseOrganizeMode(args.OrganizeMethod)
		if err != nil {
			return errorResult(err)
		}
		mode = parsed
	}

	results, err := s.coordinator.CopyFiles(ctx, engine.CopyOptions{
		Destination: args.Destination,
		Mode:        mode,
		DryRun:      args.DryRun,
	}, nil, nil)
	if err != nil {
		return errorResult(err)
	}

	sample := results
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	return textResult(copyPayload{
		Status:         "success",
		DryRun:         args.DryRun,
		FilesProcessed: len(results),
		CopyStats:      s.coordinator.CopyStats(),
		SampleResults:  sample,
	})
}

func decodeArgs(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func textResult(v interface{}) *ToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(err)
	}
	return &ToolResult{Content: []Content{{Type: "text", Text: string(data)}}}
}

func errorResult(err error) *ToolResult {
	data, _ := json.MarshalIndent(errorPayload{Status: "error", Error: err.Error()}, "", "  ")
	return &ToolResult{
		Content: []Content{{Type: "text", Text: string(data)}},
		IsError: true,
	}
}

func sortedExclusions(c *engine.Coordinator) []string {
	exclusions := c.Exclusions()
	sort.Strings(exclusions)
	return exclusions
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

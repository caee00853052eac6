package tools

import (
	"context"
	"strings"

	"github.com/korulabs/koru/agent"
)

type calculatorArgs struct {
	Expression string `json:"expression"`
}

type webSearchArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type listFilesArgs struct {
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
}

type readFileArgs struct {
	Path     string `json:"path"`
	MaxBytes int    `json:"max_bytes"`
}

type writeFileArgs struct {
	Path           string `json:"path"`
	Content        string `json:"content"`
	AllowOverwrite bool   `json:"allow_overwrite"`
	CreateParents  *bool  `json:"create_parents"` // defaults to true
}

type deleteFileArgs struct {
	Path    string `json:"path"`
	Confirm bool   `json:"confirm"`
}

// Builtin returns the builtin tool set keyed by action name. A nil search
// client gets a default one.
func Builtin(search *SearchClient) map[string]agent.Tool {
	if search == nil {
		search = NewSearchClient()
	}

	return map[string]agent.Tool{
		"calculator": agent.Func([]string{"expression"}, func(ctx context.Context, in calculatorArgs) (any, error) {
			return Calculate(in.Expression)
		}),

		"web_search": agent.Func([]string{"query"}, func(ctx context.Context, in webSearchArgs) (any, error) {
			return search.Search(ctx, in.Query, in.Limit)
		}),

		"list_files": agent.Func([]string{"path"}, func(ctx context.Context, in listFilesArgs) (any, error) {
			files, err := ListFiles(in.Path, in.Recursive)
			if err != nil {
				return nil, err
			}
			if len(files) == 0 {
				return "No files.", nil
			}
			return strings.Join(files, "\n"), nil
		}),

		"read_file": agent.Func([]string{"path"}, func(ctx context.Context, in readFileArgs) (any, error) {
			return ReadFile(in.Path, in.MaxBytes)
		}),

		"write_file": agent.Func([]string{"path", "content"}, func(ctx context.Context, in writeFileArgs) (any, error) {
			createParents := in.CreateParents == nil || *in.CreateParents
			return WriteFile(in.Path, in.Content, in.AllowOverwrite, createParents)
		}),

		"delete_file": agent.Func([]string{"path"}, func(ctx context.Context, in deleteFileArgs) (any, error) {
			removed, err := DeleteFile(in.Path, in.Confirm)
			if err != nil {
				return nil, err
			}
			if removed {
				return "deleted", nil
			}
			return "not_found", nil
		}),
	}
}

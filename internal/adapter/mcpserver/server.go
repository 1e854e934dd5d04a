package mcpserver

import (
	"TTSAnnouncer/internal/service/announcer"
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// ToolName — имя единственного инструмента сервера.
const ToolName = "announce_progress"

const toolDescription = "Speak a short progress update out loud on the user's machine. " +
	"Use it to announce that a long task finished, failed or needs attention. " +
	"Returns a status line; errors are reported inside the text."

// Announcer — то, что инструмент вызывает на каждый запрос.
type Announcer interface {
	Announce(ctx context.Context, message, voice string) announcer.Outcome
}

// AnnounceInput — аргументы announce_progress.
type AnnounceInput struct {
	Message string `json:"message" jsonschema:"the text to speak, keep it short"`
	VoiceID string `json:"voice_id,omitempty" jsonschema:"provider voice identifier, server default when omitted"`
}

// NewServer собирает MCP-сервер с инструментом announce_progress.
func NewServer(a Announcer, logger *zap.SugaredLogger, version string) *mcp.Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "tts-announcer", Title: "TTS progress announcer", Version: version}, nil)

	tool := &mcp.Tool{
		Name:        ToolName,
		Title:       "Announce progress",
		Description: toolDescription,
		Annotations: &mcp.ToolAnnotations{Title: "Speak progress update", ReadOnlyHint: false, IdempotentHint: true},
	}
	mcp.AddTool(s, tool, func(ctx context.Context, _ *mcp.CallToolRequest, in AnnounceInput) (*mcp.CallToolResult, any, error) {
		out := a.Announce(ctx, in.Message, in.VoiceID)
		logger.Debugw("announce_progress", "kind", out.Kind.String(), "voice", in.VoiceID)
		// IsError не выставляем: хост читает категорию из текста статуса
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: out.String()}},
		}, nil, nil
	})
	return s
}

// Serve обслуживает MCP по stdio до закрытия потока или отмены ctx.
func Serve(ctx context.Context, s *mcp.Server) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

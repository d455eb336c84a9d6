package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wordex/internal/domain/option"
	"github.com/kailas-cloud/wordex/internal/logger"
	lookupuc "github.com/kailas-cloud/wordex/internal/usecase/lookup"
)

// QueryRunner runs lookups.
type QueryRunner interface {
	Query(ctx context.Context, inv lookupuc.Invocation) []option.Option
}

// Handler answers launcher JSON-RPC requests.
type Handler struct {
	lookup QueryRunner
	logger *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(lookup QueryRunner, logger *zap.Logger) *Handler {
	return &Handler{lookup: lookup, logger: logger}
}

// Handle answers a decoded request. It never fails: problems are reported as result items.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	log := h.logger.With(
		zap.String("invocation_id", uuid.NewString()),
		zap.String("method", req.Method),
	)
	ctx = logger.ContextWithLogger(ctx, log)

	switch req.Method {
	case MethodQuery:
		text, err := req.StringParam(0)
		if err != nil {
			log.Warn("Invalid query parameters", zap.Error(err))
			return errorResponse("Invalid request", err.Error())
		}
		opts := h.lookup.Query(ctx, lookupuc.Invocation{
			Query:    text,
			Keyword:  req.ActionKeyword(),
			Settings: req.Settings(),
		})
		return Response{Result: option.ToWireList(opts)}

	case MethodContextMenu:
		return contextMenu(req)

	default:
		log.Warn("Unknown method")
		return errorResponse("Unknown method", fmt.Sprintf("The method %q is not supported", req.Method))
	}
}

// Serve reads one request from r and writes the response to w.
func (h *Handler) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return h.ServeBytes(ctx, data, w)
}

// ServeBytes answers a raw request and writes the response to w.
func (h *Handler) ServeBytes(ctx context.Context, data []byte, w io.Writer) error {
	var resp Response
	req, err := Decode(data)
	if err != nil {
		h.logger.Warn("Invalid request", zap.Error(err))
		resp = errorResponse("Invalid request", err.Error())
	} else {
		resp = h.Handle(ctx, req)
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// contextMenu returns the children serialized into an option's ContextData.
func contextMenu(req Request) Response {
	if len(req.Parameters) == 0 {
		return Response{Result: []option.Wire{}}
	}
	var children []option.Wire
	if err := json.Unmarshal(req.Parameters[0], &children); err != nil {
		return errorResponse("Invalid context menu data", err.Error())
	}
	if children == nil {
		children = []option.Wire{}
	}
	return Response{Result: children}
}

func errorResponse(title, sub string) Response {
	return Response{Result: []option.Wire{
		option.New(title, sub).WithIcon(option.IconError).ToWire(),
	}}
}

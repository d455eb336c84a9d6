package lookup

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/option"
	"github.com/kailas-cloud/wordex/internal/logger"
)

// Support links shown with error results.
const (
	APIKeyHelpURL = "https://github.com/cibere/Flow.Launcher.Plugin.WordNikDictionary?tab=readme-ov-file#get-an-api-key"
	IssuesURL     = "https://github.com/cibere/Flow.Launcher.Plugin.WordNikDictionary"
	DiscordURL    = "https://discord.gg/y4STfDvc8j"
)

// errorHandler tries to render a handler error. Returns false if err is not its kind.
type errorHandler func(ctx context.Context, req Request, err error) ([]option.Option, bool)

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, render func(ctx context.Context, req Request, err error) []option.Option) errorHandler {
	return func(ctx context.Context, req Request, err error) ([]option.Option, bool) {
		if !errors.Is(err, sentinel) {
			return nil, false
		}
		return render(ctx, req, err), true
	}
}

func (s *Service) buildErrorHandlers() []errorHandler {
	return []errorHandler{
		canceledHandler,
		sentinelHandler(domain.ErrInvalidInput, invalidInputOptions),
		sentinelHandler(domain.ErrInvalidCredentials, invalidCredentialsOptions),
		sentinelHandler(domain.ErrWordNotFound, s.fallback),
		sentinelHandler(domain.ErrRemote, remoteOptions),
		sentinelHandler(context.DeadlineExceeded, remoteOptions),
	}
}

// renderError maps err to options. Unclassified errors render the internal error set.
func (s *Service) renderError(ctx context.Context, req Request, err error) []option.Option {
	for _, h := range s.errorHandlers {
		if opts, ok := h(ctx, req, err); ok {
			return opts
		}
	}
	logger.FromContextOr(ctx, s.logger).Error("lookup failed",
		zap.String("query", req.Query.String()),
		zap.String("modifier", string(req.Modifier.Kind())),
		zap.Error(err),
	)
	return internalErrorOptions(s.logFile)
}

// canceledHandler drops output for queries the host already abandoned.
func canceledHandler(_ context.Context, _ Request, err error) ([]option.Option, bool) {
	if errors.Is(err, context.Canceled) {
		return nil, true
	}
	return nil, false
}

func invalidInputOptions(_ context.Context, _ Request, _ error) []option.Option {
	return []option.Option{
		option.New("Error: Invalid Results Value Given.", "The Results settings item must be a valid number.").
			WithIcon(option.IconError).
			WithAction(option.OpenSettings()),
	}
}

func invalidCredentialsOptions(_ context.Context, _ Request, _ error) []option.Option {
	return []option.Option{
		option.New("Invalid API Key", "Click ENTER for instructions on how to get a valid API key").
			WithIcon(option.IconError).
			WithAction(option.OpenURL(APIKeyHelpURL)),
	}
}

func remoteOptions(_ context.Context, req Request, err error) []option.Option {
	sub := "Could not reach the dictionary. Press ENTER to try again."
	var re *domain.RemoteError
	if errors.As(err, &re) && re.Status != 0 {
		sub = fmt.Sprintf("The dictionary answered with status %d. Press ENTER to try again.", re.Status)
	}
	mod, _ := req.Query.Modifier()
	return []option.Option{
		option.New("Dictionary request failed", sub).
			WithIcon(option.IconError).
			WithAction(option.RewriteQuery(req.Rewrite(mod))),
	}
}

func internalErrorOptions(logFile string) []option.Option {
	logOpt := option.New("And provide your log file", "Diagnostic logging is disabled").
		WithIcon(option.IconLogFile)
	if logFile != "" {
		abs, err := filepath.Abs(logFile)
		if err != nil {
			abs = logFile
		}
		logOpt = option.New(fmt.Sprintf("And provide your log file (%s)", filepath.Base(abs)), "Click on this to open the log file.").
			WithIcon(option.IconLogFile).
			WithAction(option.OpenURL("file://" + filepath.ToSlash(abs)))
	}

	return []option.Option{
		option.New("An internal error has occured.", "").WithIcon(option.IconError).WithScore(100),
		option.New("Please open a github issue", "Click this to open github repository").
			WithIcon(option.IconGithub).
			WithScore(80).
			WithAction(option.OpenURL(IssuesURL)),
		option.New("Or create a thread in our discord server", "Click on this to open discord invite").
			WithIcon(option.IconDiscord).
			WithScore(79).
			WithAction(option.OpenURL(DiscordURL)),
		logOpt,
	}
}

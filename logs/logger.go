package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/reusee/bf/cmds"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var level = func() *slog.LevelVar {
	v := new(slog.LevelVar)
	v.Set(slog.LevelWarn)
	return v
}()

func init() {
	for name, l := range map[string]slog.Level{
		"-log-debug": slog.LevelDebug,
		"-log-info":  slog.LevelInfo,
		"-log-warn":  slog.LevelWarn,
		"-log-error": slog.LevelError,
	} {
		cmds.Define(name, cmds.Func(func() {
			level.Set(l)
		}).Desc("set log level to "+strings.ToLower(l.String())))
	}
}

// Writer receives terminal log output. Program output owns stdout.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}

type SystemdService bool

func (Module) SystemdService() SystemdService {
	cgroup, err := getCgroupPath()
	if err != nil {
		return false
	}
	return SystemdService(strings.HasSuffix(path.Dir(cgroup), ".service"))
}

// Journal is the systemd journal handler, or the error from creating it.
type Journal struct {
	Handler slog.Handler
	Err     error
}

func (Module) Journal() Journal {
	handler, err := slogjournal.NewHandler(&slogjournal.Options{
		Level: level,
		ReplaceGroup: func(key string) string {
			return toJournalKey(key)
		},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
	if err != nil {
		return Journal{Err: err}
	}
	return Journal{Handler: handler}
}

type Logger = *slog.Logger

func (Module) Logger(
	writer Writer,
	service SystemdService,
	journal Journal,
) Logger {
	var handlers []slog.Handler

	// terminal
	var terminal slog.Handler
	if !service {
		terminal = slog.NewTextHandler(writer, &slog.HandlerOptions{
			Level: level,
		})
		handlers = append(handlers, terminal)
	}

	// journal
	if journal.Err != nil {
		if terminal != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", journal.Err)
			_ = terminal.Handle(context.Background(), record)
		}
	} else if journal.Handler != nil {
		handlers = append(handlers, journal.Handler)
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

func toJournalKey(str string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, strings.ToUpper(str))
}

func getCgroupPath() (string, error) {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return "", err
	}
	parts := strings.SplitN(strings.TrimSpace(string(content)), ":", 3)
	if len(parts) == 3 {
		return parts[2], nil
	}
	return "", nil
}

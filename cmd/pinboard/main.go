package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/pelletier/go-toml/v2"

	"pinboard/internal/board"
	pinclient "pinboard/internal/client"
	"pinboard/internal/config"
	"pinboard/internal/daemon"
	"pinboard/internal/logging"
	"pinboard/internal/store"
	"pinboard/internal/types"
)

const usageText = `pinboard is a sticky-note board for your terminal.

Usage:
  pinboard <command> [flags]

Commands:
  board    open the note board (default)
  daemon   run the persistence daemon
  ls       list notes
  add      add a note
  rm       remove a note
  config   print effective configuration
  help     show help

Flags:
  -h, --help   show help

Daemon flags:
  --background    run in background (logs to file)
  --force         stop any running daemon before starting
  --kill          stop any running daemon and exit

Examples:
  pinboard
  pinboard add --color pink --text "call dentist"
  pinboard ls
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		exitOnErr("board", runBoard(nil))
		return
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	case "board":
		exitOnErr("board", runBoard(args[1:]))
	case "daemon":
		exitOnErr("daemon", runDaemonCommand(args[1:]))
	case "ls":
		exitOnErr("ls", runLS(args[1:]))
	case "add":
		exitOnErr("add", runAdd(args[1:]))
	case "rm":
		exitOnErr("rm", runRM(args[1:]))
	case "config":
		exitOnErr("config", runConfig(args[1:]))
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

func runBoard(args []string) error {
	fs := flag.NewFlagSet("board", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := pinclient.New(cfg)
	if err != nil {
		return err
	}
	if err := client.EnsureDaemon(context.Background()); err != nil {
		return err
	}
	return board.Run(client, cfg, uiLogger(cfg))
}

func runDaemonCommand(args []string) error {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	background := fs.Bool("background", false, "run in background (logs to file)")
	kill := fs.Bool("kill", false, "stop any running daemon and exit")
	force := fs.Bool("force", false, "stop any running daemon before starting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *kill {
		return killDaemon()
	}
	if *force {
		if err := killDaemon(); err != nil {
			return err
		}
	}
	return runDaemon(*background)
}

func runDaemon(background bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return err
	}

	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel()))
	if background {
		if file, err := openDaemonLog(dataDir); err == nil {
			logger = logging.New(file, logging.ParseLevel(cfg.LogLevel()))
		}
	}

	tokenPath, err := config.TokenPath()
	if err != nil {
		return err
	}
	token, err := daemon.LoadOrCreateToken(tokenPath)
	if err != nil {
		return err
	}

	repo, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()
	logger.Info("store_opened", logging.F("backend", repo.Backend()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := daemon.New(cfg.DaemonAddress(), token, buildVersion(), repo.Notes, logger)
	return d.Run(ctx)
}

func openDaemonLog(dataDir string) (*os.File, error) {
	logPath := filepath.Join(dataDir, "daemon.log")
	return os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

func killDaemon() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := pinclient.New(cfg)
	if err != nil {
		return err
	}
	resp, err := client.Health(ctx)
	if err != nil {
		if isDaemonUnavailable(err) {
			return nil
		}
		return err
	}
	if resp == nil || resp.PID <= 0 {
		return nil
	}
	return terminatePID(resp.PID)
}

func terminatePID(pid int) error {
	if pid <= 0 {
		return errors.New("invalid pid")
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Signal(syscall.SIGTERM)
}

func isDaemonUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "connection refused")
}

func runLS(args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := ensuredClient()
	if err != nil {
		return err
	}
	notes, err := client.ListNotes(context.Background())
	if err != nil {
		return err
	}
	printNotes(notes)
	return nil
}

func runAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	color := fs.String("color", string(types.ColorYellow), "note color")
	text := fs.String("text", "", "note text")
	x := fs.Int("x", 0, "column position")
	y := fs.Int("y", 0, "row position")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := pinclient.New(cfg)
	if err != nil {
		return err
	}
	if err := client.EnsureDaemon(context.Background()); err != nil {
		return err
	}
	note, err := client.CreateNote(context.Background(), &types.Note{
		Color:    types.Color(*color),
		Position: types.Position{X: *x, Y: *y},
		Size:     types.Size{Width: cfg.DefaultNoteWidth(), Height: cfg.DefaultNoteHeight()},
		Text:     *text,
	})
	if err != nil {
		return err
	}
	fmt.Println(note.ID)
	return nil
}

func runRM(args []string) error {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: pinboard rm <id>")
	}

	client, err := ensuredClient()
	if err != nil {
		return err
	}
	return client.DeleteNote(context.Background(), fs.Arg(0))
}

func runConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func ensuredClient() (*pinclient.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	client, err := pinclient.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := client.EnsureDaemon(context.Background()); err != nil {
		return nil, err
	}
	return client, nil
}

func uiLogger(cfg config.Config) logging.Logger {
	dataDir, err := config.DataDir()
	if err != nil {
		return logging.Nop()
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return logging.Nop()
	}
	file, err := os.OpenFile(filepath.Join(dataDir, "ui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return logging.Nop()
	}
	return logging.New(file, logging.ParseLevel(cfg.LogLevel()))
}

func printNotes(notes []*types.Note) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tCOLOR\tPOS\tSIZE\tZ\tTEXT")
	for _, note := range notes {
		text := strings.ReplaceAll(note.Text, "\n", " ")
		if len(text) > 40 {
			text = text[:40] + "…"
		}
		fmt.Fprintf(writer, "%s\t%s\t%d,%d\t%dx%d\t%d\t%s\n",
			note.ID, note.Color,
			note.Position.X, note.Position.Y,
			note.Size.Width, note.Size.Height,
			note.ZIndex, text,
		)
	}
	_ = writer.Flush()
}

func exitOnErr(label string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && len(setting.Value) >= 8 {
				return setting.Value[:8]
			}
		}
	}
	return "dev"
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	log "log/slog"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"jarvis/internal/actions"
	"jarvis/internal/assistant"
	"jarvis/internal/audio"
	"jarvis/internal/google"
	"jarvis/internal/intent"
	"jarvis/internal/ipc"
	"jarvis/internal/listen"
	"jarvis/internal/logging"
	"jarvis/internal/notify"
	"jarvis/internal/prompt"
	"jarvis/internal/proxy"
	"jarvis/internal/qa"
	"jarvis/internal/reasoning"
	"jarvis/internal/screen"
	"jarvis/internal/screen/tesseract"
	"jarvis/internal/session"
	"jarvis/internal/tts"
	"jarvis/internal/tts/espeak"
	"jarvis/pkg/stt"
)

type flags struct {
	envFile      string
	proxyAddr    string
	logLevel     string
	logDir       string
	model        string
	llmTimeout   time.Duration
	input        string
	files        []string
	whisperModel string
	language     string
	ttsMode      string
	voice        string
	duck         bool
	trigger      bool
	socket       string
	beep         string
	desktop      bool
	ocrLangs     []string
	mail         string
	calendar     string
	googleCreds  string
	googleToken  string
}

func parseFlags() flags {
	var f flags
	cli.StringVarP(&f.envFile, "env", "e", ".env", "Env file path")
	cli.StringVarP(&f.proxyAddr, "proxy", "p", "", "Socks proxy address (empty = direct)")
	cli.StringVarP(&f.logLevel, "log", "l", "info", "Log level")
	cli.StringVar(&f.logDir, "log-dir", "", "Directory for rotating log files")
	cli.StringVarP(&f.model, "model", "m", "gpt-4o-mini", "Chat model for classification and answers")
	cli.DurationVar(&f.llmTimeout, "llm-timeout", 30*time.Second, "Timeout for one reasoning call")
	cli.StringVarP(&f.input, "input", "i", "mic", "Command source: mic|console|files")
	cli.StringSliceVar(&f.files, "files", nil, "Audio files replayed as utterances with --input files")
	cli.StringVar(&f.whisperModel, "whisper-model", "third_party/whisper.cpp/models/ggml-base.en.bin", "Whisper model path")
	cli.StringVar(&f.language, "language", "en", "Speech language")
	cli.StringVar(&f.ttsMode, "tts", "espeak", "Speech output: espeak|clip|console")
	cli.StringVar(&f.voice, "voice", "en", "espeak voice")
	cli.BoolVar(&f.duck, "duck", false, "Lower other audio streams while speaking")
	cli.BoolVar(&f.trigger, "trigger", false, "Wait for jarvis-ctl trigger before each listen")
	cli.StringVar(&f.socket, "socket", ipc.DefaultSocketPath, "Control socket path")
	cli.StringVar(&f.beep, "beep", "", "Sound played before listening")
	cli.BoolVar(&f.desktop, "notify", false, "Desktop notification before listening")
	cli.StringSliceVar(&f.ocrLangs, "ocr-lang", []string{"eng"}, "Tesseract languages")
	cli.StringVar(&f.mail, "mail", "log", "Mail backend: log|gmail")
	cli.StringVar(&f.calendar, "calendar", "log", "Calendar backend: log|google")
	cli.StringVar(&f.googleCreds, "google-credentials", "credentials.json", "Google OAuth client credentials")
	cli.StringVar(&f.googleToken, "google-token", "token.json", "Google OAuth token")
	cli.Parse()
	return f
}

func main() {
	if err := run(parseFlags()); err != nil {
		log.Error("Fatal", "err", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	logCloser, err := logging.Setup(logging.Config{Level: f.logLevel, Dir: f.logDir}, os.Stdout)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	log.Info("Booting up")

	godotenv.Load(f.envFile)
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return errors.New("OPENAI_API_KEY not set")
	}

	httpClient, err := proxy.NewClient(f.proxyAddr)
	if err != nil {
		return fmt.Errorf("proxy: %w", err)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
	}
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	llm := reasoning.NewOpenAI(openai.NewClient(opts...), f.model, f.llmTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, closeListener, err := newListener(f)
	if err != nil {
		return err
	}
	defer closeListener()

	log.Debug("Loaded listener", "input", f.input)

	speaker, err := newSpeaker(f)
	if err != nil {
		return err
	}

	mailer, calendar, err := newBackends(ctx, f, httpClient)
	if err != nil {
		return err
	}

	cfg := assistant.Config{
		Listener:   listener,
		Speaker:    speaker,
		Classifier: intent.NewClassifier(llm),
		Screen:     screen.NewPipeline(screen.Display{}, tesseract.Client{Languages: f.ocrLangs}),
		Answerer:   qa.NewAnswerer(llm),
		Mailer:     mailer,
		Calendar:   calendar,
		Form:       prompt.Terminal{},
		Session:    session.New(),
		MailFrom:   os.Getenv("MAIL_FROM"),
	}

	if f.trigger {
		srv, err := ipc.Listen(f.socket)
		if err != nil {
			return fmt.Errorf("control socket: %w", err)
		}
		defer srv.Close()

		go func() {
			if err := srv.Serve(ctx); err != nil {
				log.Error("Control socket stopped", "err", err)
			}
		}()
		cfg.Trigger = srv.Triggers()
	}

	log.Info("Boot up - successful")

	err = assistant.New(cfg).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newListener(f flags) (listen.Listener, func(), error) {
	opt := stt.Options{Language: f.language}

	switch f.input {
	case "console":
		c, err := listen.NewConsole("you> ")
		if err != nil {
			return nil, nil, fmt.Errorf("console: %w", err)
		}
		return c, func() { c.Close() }, nil

	case "files", "mic":
		whisper, err := stt.NewTranscriber(f.whisperModel)
		if err != nil {
			return nil, nil, fmt.Errorf("whisper: %w", err)
		}

		if f.input == "files" {
			return listen.NewFiles(f.files, whisper, opt), func() { whisper.Close() }, nil
		}

		rec := audio.NewRecorder(audio.DefaultRecorderConfig())
		if err := rec.Init(); err != nil {
			whisper.Close()
			return nil, nil, fmt.Errorf("audio: %w", err)
		}

		cue := notify.Cue{BeepPath: f.beep, Desktop: f.desktop}
		closeAll := func() {
			rec.Close()
			whisper.Close()
		}
		return listen.NewMic(rec, whisper, opt, cue), closeAll, nil
	}

	return nil, nil, fmt.Errorf("unknown input %q", f.input)
}

func newSpeaker(f flags) (tts.Speaker, error) {
	var s tts.Speaker
	switch f.ttsMode {
	case "espeak":
		s = espeak.Speaker{Language: f.voice}
	case "clip":
		s = tts.NewClip(f.voice)
	case "console":
		s = tts.Console{W: os.Stdout}
	default:
		return nil, fmt.Errorf("unknown tts %q", f.ttsMode)
	}

	if f.duck {
		s = tts.Ducking{
			Speaker: s,
			Ducker:  audio.NewDucker([]string{"jarvis", "espeak-ng"}, 0.3, 5, 250*time.Millisecond),
		}
	}
	return s, nil
}

func newBackends(ctx context.Context, f flags, base *http.Client) (actions.Mailer, actions.Calendar, error) {
	var (
		mailer   actions.Mailer   = actions.LogMailer{}
		calendar actions.Calendar = actions.LogCalendar{}
	)

	needGoogle := f.mail == "gmail" || f.calendar == "google"
	if !needGoogle {
		return mailer, calendar, nil
	}

	client, err := google.NewClient(ctx, f.googleCreds, f.googleToken, base)
	if err != nil {
		return nil, nil, fmt.Errorf("google auth: %w", err)
	}

	if f.mail == "gmail" {
		if mailer, err = actions.NewGmail(ctx, client); err != nil {
			return nil, nil, err
		}
	}
	if f.calendar == "google" {
		if calendar, err = actions.NewGoogleCalendar(ctx, client, os.Getenv("GOOGLE_CALENDAR_ID")); err != nil {
			return nil, nil, err
		}
	}

	return mailer, calendar, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/matt-g-everett/animtx/api"
	"github.com/matt-g-everett/animtx/motion"
	"github.com/matt-g-everett/animtx/raster"
	"github.com/matt-g-everett/animtx/shape"
	"github.com/matt-g-everett/animtx/store"
	"github.com/matt-g-everett/animtx/stream"
)

type app struct {
	Config   stream.Config
	Registry *shape.Registry
	Store    store.Service
	Client   mqtt.Client
	Streamer *stream.Streamer
	Animator *stream.Animator
	Control  *stream.Control
}

func newApp() *app {
	a := new(app)
	a.Registry = shape.DefaultRegistry()
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Info("Connected")
	if err := a.Control.Subscribe(); err != nil {
		log.Errorf("Failed to subscribe to control topic: %v", err)
	}
}

func (a *app) readConfig(configPath string) {
	config, err := stream.ReadConfig(configPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Warnf("No config at %s, using defaults", configPath)
		config = stream.DefaultConfig()
	} else if err != nil {
		panic(err)
	}
	a.Config = config
}

func (a *app) openStore() (func(), error) {
	if a.Config.Store.URL != "" {
		a.Store = store.WithTimeout(store.NewClient(a.Config.Store.URL, nil), a.Config.Store.Timeout)
		return func() {}, nil
	}

	db, err := store.OpenSQLite(a.Config.Store.Path)
	if err != nil {
		return nil, err
	}
	a.Store = store.WithTimeout(db, a.Config.Store.Timeout)
	return func() { db.Close() }, nil
}

func (a *app) loadProject(ctx context.Context, name string) ([]byte, error) {
	data, err := a.Store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("project %q not found", name)
	}
	return data, nil
}

func (a *app) play(ctx context.Context, project string) error {
	data, err := a.loadProject(ctx, project)
	if err != nil {
		return err
	}
	model, err := motion.Deserialize(a.Registry, data)
	if err != nil {
		return err
	}

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)
	a.Streamer = stream.NewStreamer(a.Config, a.Client)
	a.Animator = stream.NewAnimator(model, a.Streamer, stream.SystemClock{}, stream.TimerScheduler{})
	a.Control = stream.NewControl(a.Config, a.Client, a.Animator)

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer a.Client.Disconnect(250)

	log.Infof("Playing %s with %d shapes", project, model.Len())
	a.Animator.Start()
	a.Streamer.Run(ctx)
	a.Animator.Reset()
	return nil
}

func (a *app) export(ctx context.Context, project, dir string) error {
	data, err := a.loadProject(ctx, project)
	if err != nil {
		return err
	}
	state, err := motion.DecodeState(data)
	if err != nil {
		return err
	}
	if dir == "" {
		dir = a.Config.Export.Dir
	}

	exporter := raster.NewExporter(a.Registry, a.Config.Animation.Width, a.Config.Animation.Height, a.Config.Export.Workers)
	n, err := exporter.Export(ctx, state, dir)
	if err != nil {
		return err
	}
	log.Infof("Exported %d frames to %s", n, dir)
	return nil
}

func (a *app) importProject(ctx context.Context, project, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := motion.Deserialize(a.Registry, data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := a.Store.Save(ctx, project, data); err != nil {
		return err
	}
	log.Infof("Imported %s as %s", path, project)
	return nil
}

func (a *app) list(ctx context.Context) error {
	names, err := a.Store.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func (a *app) serve(ctx context.Context) error {
	return api.NewApi(a.Store, a.Config.Api.ClientDir).Serve(ctx, a.Config.Api.Listen)
}

func main() {
	mqtt.ERROR = log.StandardLogger()

	// Parse command line parameters
	configPath := flag.StringP("config", "c", "config.yaml", "YAML config file.")
	mode := flag.StringP("mode", "m", "play", "One of play, serve, export, import or list.")
	project := flag.StringP("project", "p", "", "Project name in the store.")
	file := flag.StringP("file", "f", "", "Project JSON file to import.")
	outDir := flag.StringP("out", "o", "", "Frame output directory for export.")
	level := flag.String("log-level", "info", "Log level.")
	flag.Parse()

	logLevel, err := log.ParseLevel(*level)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(logLevel)

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	log.Debugf("Config: %+v", a.Config)

	closeStore, err := a.openStore()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "play":
		if a.Config.Api.Listen != "" {
			go func() {
				if err := a.serve(ctx); err != nil {
					log.Errorf("Api stopped: %v", err)
				}
			}()
		}
		err = a.play(ctx, *project)
	case "serve":
		err = a.serve(ctx)
	case "export":
		err = a.export(ctx, *project, *outDir)
	case "import":
		err = a.importProject(ctx, *project, *file)
	case "list":
		err = a.list(ctx)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Error(err)
		closeStore()
		os.Exit(1)
	}
}

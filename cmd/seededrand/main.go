package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/lox/seededrand/cmd/seededrand/shared"
	"github.com/lox/seededrand/config"
	"github.com/lox/seededrand/seed"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Debug   bool `help:"Enable debug logging"`
	LogJSON bool `name:"log-json" help:"Emit logs as JSON"`
	NoColor bool `name:"no-color" help:"Disable coloured output"`

	Stdout io.Writer      `kong:"-"`
	Env    *config.Config `kong:"-"`
}

func (g *Globals) out() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Globals) logLevel() string {
	if g.Debug {
		return "debug"
	}
	if g.Env != nil {
		return g.Env.LogLevel
	}
	return "info"
}

// Logger builds the CLI logger. Logs always go to stderr so that stdout
// carries only samples.
func (g *Globals) Logger() zerolog.Logger {
	if g.LogJSON {
		return shared.SetupStructuredLogger(os.Stderr, g.logLevel())
	}
	return shared.SetupLogger(os.Stderr, g.logLevel())
}

// SeedFlags select the generator for a command
type SeedFlags struct {
	Seed   string  `short:"s" help:"Seed spec: fixed:N, ns:N, name:TEXT or a bare integer, optionally @STREAM (default $$SEEDEDRAND_SEED)"`
	Stream *uint64 `help:"Stream selector, overriding any @STREAM (default $$SEEDEDRAND_STREAM)"`
}

// Spec resolves the flags against the environment defaults. An explicit
// --seed replaces the environment seed entirely.
func (f SeedFlags) Spec(env *config.Config) (seed.Spec, error) {
	spec := seed.Fixed(0)
	if env != nil {
		spec = env.Seed
	}
	if f.Seed != "" {
		var err error
		if spec, err = seed.Parse(f.Seed); err != nil {
			return seed.Spec{}, err
		}
	}
	if f.Stream != nil {
		spec = spec.WithStream(*f.Stream)
	}
	return spec, nil
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Words   WordsCmd         `cmd:"" help:"Print raw 64-bit generator output"`
	Sample  SampleCmd        `cmd:"" help:"Draw samples from a distribution"`
	Run     RunCmd           `cmd:"" help:"Execute an HCL or YAML sampling plan"`
	Check   CheckCmd         `cmd:"" help:"Run the statistical self-checks"`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("seededrand"),
		kong.Description("Deterministic PCG random streams and samplers"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	env, err := config.FromEnv()
	ctx.FatalIfErrorf(err)
	cli.Env = env

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	err = ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

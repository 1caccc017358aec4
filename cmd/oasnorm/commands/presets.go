package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/oasnorm/internal/cliutil"
	"github.com/erraggy/oasnorm/transform"
)

// PresetsFlags contains flags for the presets command
type PresetsFlags struct {
	Format string
}

// SetupPresetsFlags creates and configures a FlagSet for the presets command.
func SetupPresetsFlags() (*flag.FlagSet, *PresetsFlags) {
	fs := flag.NewFlagSet("presets", flag.ContinueOnError)
	flags := &PresetsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text or json")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasnorm presets [flags]\n\n")
		cliutil.Writef(fs.Output(), "List the normalization presets and the stages each one runs.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

type presetListing struct {
	Name    string   `json:"name"`
	Default bool     `json:"default,omitempty"`
	Stages  []string `json:"stages"`
}

// HandlePresets executes the presets command
func HandlePresets(args []string) error {
	fs, flags := SetupPresetsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("presets command takes no arguments")
	}
	if err := ValidateOutputFormat(flags.Format, FormatText, FormatJSON); err != nil {
		return err
	}

	var listings []presetListing
	for _, name := range transform.PresetNames() {
		pipeline, err := transform.Preset(name)
		if err != nil {
			return err
		}
		listings = append(listings, presetListing{
			Name:    name,
			Default: name == transform.DefaultPreset,
			Stages:  pipeline.Names(),
		})
	}

	if flags.Format == FormatJSON {
		data, err := json.MarshalIndent(listings, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling to json: %w", err)
		}
		cliutil.Write(stdout, append(data, '\n'))
		return nil
	}

	for _, l := range listings {
		suffix := ""
		if l.Default {
			suffix = " (default)"
		}
		cliutil.Writef(stdout, "%s%s\n", l.Name, suffix)
		if len(l.Stages) == 0 {
			cliutil.Writef(stdout, "  (no stages)\n")
		}
		for _, s := range l.Stages {
			cliutil.Writef(stdout, "  %s\n", s)
		}
	}
	return nil
}

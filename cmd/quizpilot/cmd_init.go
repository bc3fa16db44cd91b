package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/spboyer/quizpilot/internal/config"
)

const envExample = `# Copy to .env and fill in. Variables set in the shell take precedence.
QUIZPILOT_EMAIL=
QUIZPILOT_PASSWORD=
QUIZPILOT_QUIZ=
QUIZPILOT_PRACTICE=true
# Seconds to wait for the chat response.
QUIZPILOT_RESPONSE_WAIT=30
`

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default configuration",
		Long: `Write a default ` + config.FileName + `, a .env.example and an empty reference
images directory.

Existing files are never overwritten. If no directory is specified, the
current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: initCommandE,
	}
	return cmd
}

func initCommandE(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	out := cmd.OutOrStdout()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	cfgData, err := yaml.Marshal(config.New())
	if err != nil {
		return fmt.Errorf("failed to render default config: %w", err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{config.FileName, cfgData},
		{".env.example", []byte(envExample)},
	}

	created := 0
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		wrote, err := writeIfMissing(path, f.data)
		if err != nil {
			return err
		}
		if wrote {
			created++
			fmt.Fprintf(out, "  created %s\n", path) //nolint:errcheck
		} else {
			fmt.Fprintf(out, "  exists  %s\n", path) //nolint:errcheck
		}
	}

	imagesDir := filepath.Join(dir, config.DefaultImagesDir)
	if _, err := os.Stat(imagesDir); os.IsNotExist(err) {
		if err := os.MkdirAll(imagesDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", imagesDir, err)
		}
		created++
		fmt.Fprintf(out, "  created %s/\n", imagesDir) //nolint:errcheck
	}

	if created == 0 {
		fmt.Fprintln(out, "Everything is up to date.") //nolint:errcheck
		return nil
	}
	fmt.Fprintf(out, "\nAdd these screenshots of your own screen to %s/:\n", imagesDir) //nolint:errcheck
	for _, name := range []string{
		config.DefaultVerifyButtonImage,
		config.DefaultSkillSearchImage,
		config.DefaultSendMessageImage,
		config.DefaultResponseImage,
	} {
		fmt.Fprintf(out, "  %s\n", name) //nolint:errcheck
	}
	return nil
}

// writeIfMissing creates path with data unless it already exists.
func writeIfMissing(path string, data []byte) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if os.IsExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close() //nolint:errcheck
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, f.Close()
}

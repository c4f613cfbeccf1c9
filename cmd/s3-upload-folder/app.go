package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/config"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/logging"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/progress"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/s3types"
)

const flagConfig = "config"

// run executes the command line and reports any failure on stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	err := newApp(stdout, stderr).RunContext(ctx, args)
	if err != nil {
		fmt.Fprintf(stderr, "error [%s]: %v\n", errors.CodeOf(err), err)
	}
	return err
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            "s3-upload-folder",
		Usage:           "upload a folder or a single file to an S3-compatible bucket",
		UsageText:       "s3-upload-folder -d <dir> -b <bucket> --ak <key> --sk <secret> [options]",
		Version:         version,
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		Flags:           flags(),
		Action:          upload,
		// Errors are reported by run; the exit code is set in main.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: config.KeyDist, Aliases: []string{"d"}, Usage: "local `DIR` to upload"},
		&cli.StringFlag{Name: config.KeyFile, Usage: "single local `FILE` to upload instead of a folder"},
		&cli.StringFlag{Name: config.KeyBucket, Aliases: []string{"b"}, Usage: "target bucket"},
		&cli.StringFlag{Name: config.KeyAccessKey, Aliases: []string{"ak"}, Usage: "access key id"},
		&cli.StringFlag{Name: config.KeySecretKey, Aliases: []string{"sk"}, Usage: "secret access key"},
		&cli.StringFlag{Name: config.KeyEndpoint, Aliases: []string{"e"}, Usage: "custom endpoint `URL`"},
		&cli.StringFlag{Name: config.KeyRegion, Aliases: []string{"r"}, Usage: "bucket region", DefaultText: s3types.DefaultRegion},
		&cli.StringFlag{Name: config.KeyPrefix, Aliases: []string{"p"}, Usage: "key prefix for uploaded objects"},
		&cli.BoolFlag{Name: config.KeyForcePathStyle, Aliases: []string{"forcePathStyle"}, Usage: "use path-style addressing; disable with --force-path-style=false", DefaultText: "true"},
		&cli.IntFlag{Name: config.KeyConcurrency, Aliases: []string{"c"}, Usage: "files uploaded per window (1-100)", DefaultText: "6"},
		&cli.StringFlag{Name: config.KeyContentType, Usage: "content type for --file, overrides detection"},
		&cli.BoolFlag{Name: config.KeyDetectContent, Usage: "sniff the content type of files with unknown extensions"},
		&cli.BoolFlag{Name: config.KeyDryRun, Usage: "list what would be uploaded without uploading"},
		&cli.StringSliceFlag{Name: config.KeyExclude, Usage: "skip files matching `PATTERN` (repeatable)"},
		&cli.StringFlag{Name: config.KeyDriver, Usage: "object store client: aws or minio", DefaultText: string(s3types.DriverAWS)},
		&cli.DurationFlag{Name: config.KeyTimeout, Usage: "per-request timeout, 0 for none"},
		&cli.StringFlag{Name: config.KeyLogLevel, Usage: "debug, info, warn or error", DefaultText: logging.DefaultLevel},
		&cli.BoolFlag{Name: config.KeyLogTimestamps, Usage: "prefix log lines with a UTC timestamp"},
		&cli.BoolFlag{Name: config.KeyQuiet, Aliases: []string{"q"}, Usage: "only log errors and hide the progress bar"},
		&cli.StringFlag{Name: flagConfig, Usage: "load settings from `FILE` (yaml, json or toml)"},
	}
}

// setFlags collects the flags the user set explicitly so they take precedence over every other source.
func setFlags(c *cli.Context) map[string]any {
	overrides := make(map[string]any)

	for _, f := range c.App.Flags {
		name := f.Names()[0]
		if name == flagConfig || !c.IsSet(name) {
			continue
		}

		switch f.(type) {
		case *cli.BoolFlag:
			overrides[name] = c.Bool(name)
		case *cli.IntFlag:
			overrides[name] = c.Int(name)
		case *cli.DurationFlag:
			overrides[name] = c.Duration(name)
		case *cli.StringSliceFlag:
			overrides[name] = c.StringSlice(name)
		default:
			overrides[name] = c.String(name)
		}
	}

	return overrides
}

func upload(c *cli.Context) error {
	// Boolean flags only take a value in the --flag=value form, so a stray
	// argument is usually a misplaced "false".
	if c.Args().Present() {
		return fmt.Errorf("%w: unexpected argument %q (boolean flags take the form --flag=false)",
			errors.ErrInvalidInput, c.Args().First())
	}

	cfg, err := config.Load(c.String(flagConfig), setFlags(c))
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		if stderrors.Is(err, errors.ErrMissingParameter) {
			_ = cli.ShowAppHelp(c)
		}
		return err
	}

	logger, err := logging.New(c.App.ErrWriter, logging.Options{
		Level:      cfg.LogLevel,
		Quiet:      cfg.Quiet,
		Timestamps: cfg.LogTimestamps,
	})
	if err != nil {
		return err
	}

	client, err := s3upload.New(c.Context,
		s3upload.WithRegion(cfg.Region),
		s3upload.WithEndpoint(cfg.Endpoint),
		s3upload.WithCredentials(cfg.AccessKey, cfg.SecretKey),
		s3upload.WithForcePathStyle(cfg.ForcePathStyle),
		s3upload.WithDriver(s3types.Driver(cfg.Driver)),
		s3upload.WithTimeout(cfg.Timeout),
		s3upload.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if cfg.FolderMode() {
		return uploadFolder(c, client, cfg, logger)
	}
	return uploadFile(c, client, cfg)
}

func uploadFolder(c *cli.Context, client *s3upload.Client, cfg *config.Config, logger *slog.Logger) error {
	opts := []s3types.FolderOption{
		s3upload.WithConcurrency(cfg.Concurrency),
		s3upload.WithExcludePatterns(cfg.Exclude...),
		s3upload.WithContentDetection(cfg.DetectContent),
		s3upload.WithDryRun(cfg.DryRun),
	}
	if !cfg.Quiet {
		opts = append(opts, s3upload.WithProgress(progress.NewBar(c.App.Writer)))
	}

	logger.Info("uploading folder", "path", cfg.Dist, "bucket", cfg.Bucket, "prefix", cfg.Prefix)

	result, err := client.UploadFolder(c.Context, cfg.Bucket, cfg.Prefix, cfg.Dist, opts...)
	if err != nil {
		if result != nil {
			logger.Error("upload stopped", "files", result.FilesUploaded, "total", result.FilesTotal, "error", err)
		}
		return err
	}

	verb := "Uploaded"
	if result.DryRun {
		verb = "Would upload"
	}
	fmt.Fprintf(c.App.Writer, "%s %d files (%s) to s3://%s in %s\n",
		verb, result.FilesUploaded, humanize.Bytes(uint64(result.BytesUploaded)),
		path.Join(cfg.Bucket, cfg.Prefix), result.Duration.Round(time.Millisecond))
	return nil
}

func uploadFile(c *cli.Context, client *s3upload.Client, cfg *config.Config) error {
	result, err := client.UploadFile(c.Context, cfg.Bucket, cfg.Prefix, cfg.File,
		s3upload.WithContentType(cfg.ContentType),
		s3upload.WithFileContentDetection(cfg.DetectContent),
		s3upload.WithFileDryRun(cfg.DryRun),
	)
	if err != nil {
		return err
	}

	verb := "Uploaded"
	if result.DryRun {
		verb = "Would upload"
	}
	fmt.Fprintf(c.App.Writer, "%s %s (%s) to s3://%s/%s in %s\n",
		verb, cfg.File, humanize.Bytes(uint64(result.Size)), cfg.Bucket, result.Key, result.Duration.Round(time.Millisecond))
	return nil
}

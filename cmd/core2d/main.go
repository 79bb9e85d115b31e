/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"core2d/internal/config"
	"core2d/internal/crash"
	"core2d/internal/data"
	"core2d/internal/export"
	"core2d/internal/history"
	applog "core2d/internal/log"
	"core2d/internal/model"
	"core2d/internal/storage"
	"core2d/internal/stylepack"
	"core2d/internal/version"
)

// errUsage marks argument errors; they exit with code 2.
var errUsage = errors.New("usage")

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "core2d: 2D vector drawing projects")
	_, _ = fmt.Fprintf(w, "Version: %s\n", version.String())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  core2d version|-v|--version                     Show version")
	_, _ = fmt.Fprintln(w, "  core2d new [-width W -height H] <dir> <name>   Create a new project at <dir>")
	_, _ = fmt.Fprintln(w, "  core2d info <dir>                               Print a project summary")
	_, _ = fmt.Fprintln(w, "  core2d export-pdf [-out file] [-pages 1,3] <dir>")
	_, _ = fmt.Fprintln(w, "  core2d export-svg [-out dir] [-dpi N] <dir>")
	_, _ = fmt.Fprintln(w, "  core2d export-png [-out dir] [-scale S] <dir>")
	_, _ = fmt.Fprintln(w, "  core2d export [-preset web|print] [-formats pdf,png,svg] [-out dir] <dir>")
	_, _ = fmt.Fprintln(w, "  core2d images <dir>                             List stored images")
	_, _ = fmt.Fprintln(w, "  core2d images add <dir> <file>...               Add image files to the project")
	_, _ = fmt.Fprintln(w, "  core2d images purge <dir>                       Drop images no shape uses")
	_, _ = fmt.Fprintln(w, "  core2d styles export <dir> <zip>                Write the style libraries to a pack")
	_, _ = fmt.Fprintln(w, "  core2d styles install <dir> <zip>               Add the libraries of a pack")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		applog.Init(applog.FromEnv())
		applog.WithComponent("cli").Error("config", slog.Any("err", err))
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	applog.Init(cfg.LogOptions())

	os.Exit(runRecovered(os.Args[1:], cfg))
}

// runRecovered runs the command with crash recovery installed. Commands fill
// ph in place, so Recover sees the project that was open when a panic hit.
func runRecovered(args []string, cfg config.AppConfig) int {
	ph := &storage.ProjectHandle{}
	defer crash.Recover(ph)
	return run(args, cfg, ph, os.Stdout, os.Stderr)
}

// run executes one command and returns the process exit code. The project a
// command opens is copied into ph.
func run(args []string, cfg config.AppConfig, ph *storage.ProjectHandle, stdout, stderr io.Writer) int {
	l := applog.WithComponent("cli")
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) == 0 {
		usage(stdout)
		return 0
	}
	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "version", "--version", "-v":
		_, _ = fmt.Fprintln(stdout, version.String())
		return 0
	case "help", "--help", "-h":
		usage(stdout)
		return 0
	case "new":
		err = cmdNew(rest, cfg, ph, stdout)
	case "info":
		err = cmdInfo(rest, ph, stdout)
	case "export-pdf":
		err = cmdExportPDF(rest, ph, stdout)
	case "export-svg":
		err = cmdExportSVG(rest, ph, stdout)
	case "export-png":
		err = cmdExportPNG(rest, ph, stdout)
	case "export":
		err = cmdExport(rest, ph, stdout)
	case "images":
		err = cmdImages(rest, ph, stdout)
	case "styles":
		err = cmdStyles(rest, ph, stdout)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	if err == nil {
		return 0
	}
	_, _ = fmt.Fprintln(stderr, "Error:", err)
	if errors.Is(err, errUsage) {
		usage(stderr)
		return 2
	}
	l.Error("command failed", slog.String("cmd", args[0]), slog.Any("err", err))
	return 1
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string, positional int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	if fs.NArg() < positional {
		return nil, fmt.Errorf("%w: %s needs %d argument(s)", errUsage, fs.Name(), positional)
	}
	return fs.Args(), nil
}

// open loads the project at dir and binds its texts for output.
func open(dir string, ph *storage.ProjectHandle) (*storage.ProjectHandle, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	h, err := storage.Open(abs)
	if err != nil {
		return nil, err
	}
	*ph = *h
	data.New().Bind(h.Project)
	return ph, nil
}

func cmdNew(args []string, cfg config.AppConfig, ph *storage.ProjectHandle, stdout io.Writer) error {
	fs := newFlags("new")
	width := fs.Float64("width", model.DefaultTemplateWidth, "template width")
	height := fs.Float64("height", model.DefaultTemplateHeight, "template height")
	rest, err := parse(fs, args, 2)
	if err != nil {
		return err
	}
	if *width <= 0 || *height <= 0 {
		return fmt.Errorf("%w: width and height must be positive", errUsage)
	}
	abs, err := filepath.Abs(rest[0])
	if err != nil {
		return err
	}
	p := model.NewProject(rest[1])
	p.Options = cfg.EditorOptions()
	p.History = history.New(cfg.HistoryOptions())
	for _, t := range p.Templates.All() {
		t.Width, t.Height = *width, *height
	}
	applog.WithComponent("cli").Info("init project", slog.String("root", abs), slog.String("name", p.Name))
	h, err := storage.InitProject(abs, p)
	if err != nil {
		return err
	}
	*ph = *h
	_, _ = fmt.Fprintln(stdout, "Created project at", abs)
	return nil
}

func cmdInfo(args []string, ph *storage.ProjectHandle, stdout io.Writer) error {
	rest, err := parse(newFlags("info"), args, 1)
	if err != nil {
		return err
	}
	h, err := open(rest[0], ph)
	if err != nil {
		return err
	}
	p := h.Project
	_, _ = fmt.Fprintf(stdout, "Project: %s\n", p.Name)
	_, _ = fmt.Fprintf(stdout, "Root: %s\n", h.Root)
	_, _ = fmt.Fprintf(stdout, "Templates: %d  Styles: %d  Databases: %d  Images: %d\n",
		p.Templates.Len(), countStyles(p), p.Databases.Len(), p.Images().Len())
	for _, d := range p.Documents.All() {
		_, _ = fmt.Fprintf(stdout, "Document %s: %d page(s)\n", d.Name, d.Pages.Len())
		for i, pg := range d.Pages.All() {
			_, _ = fmt.Fprintf(stdout, "  %d. %s %gx%g, %d shape(s)\n",
				i+1, pg.Name, pg.EffectiveWidth(), pg.EffectiveHeight(), countShapes(pg))
		}
	}
	return nil
}

func countStyles(p *model.Project) int {
	n := 0
	for _, sl := range p.StyleLibraries.All() {
		n += sl.Items.Len()
	}
	return n
}

func countShapes(c *model.Container) int {
	n := 0
	for _, l := range c.Layers.All() {
		n += l.Shapes().Len()
	}
	return n
}

// parsePages turns "1,3" into zero based indexes.
func parsePages(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: bad page number %q", errUsage, part)
		}
		out = append(out, n-1)
	}
	return out, nil
}

func cmdExportPDF(args []string, ph *storage.ProjectHandle, stdout io.Writer) error {
	fs := newFlags("export-pdf")
	out := fs.String("out", "", "output file (default <dir>/exports/project.pdf)")
	pagesFlag := fs.String("pages", "", "comma separated page numbers, 1 based")
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	pages, err := parsePages(*pagesFlag)
	if err != nil {
		return err
	}
	h, err := open(rest[0], ph)
	if err != nil {
		return err
	}
	path := *out
	if path == "" {
		path = filepath.Join(h.Root, storage.ExportsDirName, "project.pdf")
	}
	if err := export.ExportPDF(h.Project, path, export.PDFOptions{Title: h.Project.Name, Pages: pages}); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "Wrote", path)
	return nil
}

func outDir(h *storage.ProjectHandle, flagValue, format string) string {
	if flagValue != "" {
		return flagValue
	}
	return filepath.Join(h.Root, storage.ExportsDirName, format)
}

func cmdExportSVG(args []string, ph *storage.ProjectHandle, stdout io.Writer) error {
	fs := newFlags("export-svg")
	out := fs.String("out", "", "output directory (default <dir>/exports/svg)")
	dpi := fs.Int("dpi", 72, "pixel density of the width and height attributes")
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	h, err := open(rest[0], ph)
	if err != nil {
		return err
	}
	dir := outDir(h, *out, "svg")
	if err := export.ExportSVGPages(h.Project, dir, export.SVGOptions{DPI: *dpi}); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "Wrote", dir)
	return nil
}

func cmdExportPNG(args []string, ph *storage.ProjectHandle, stdout io.Writer) error {
	fs := newFlags("export-png")
	out := fs.String("out", "", "output directory (default <dir>/exports/png)")
	scale := fs.Float64("scale", 1, "pixels per document unit")
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	if *scale <= 0 {
		return fmt.Errorf("%w: scale must be positive", errUsage)
	}
	h, err := open(rest[0], ph)
	if err != nil {
		return err
	}
	dir := outDir(h, *out, "png")
	if err := export.ExportPNGPages(h.Project, dir, export.PNGOptions{Scale: *scale}); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "Wrote", dir)
	return nil
}

func cmdExport(args []string, ph *storage.ProjectHandle, stdout io.Writer) error {
	fs := newFlags("export")
	preset := fs.String("preset", string(export.PresetWeb), "web or print")
	formats := fs.String("formats", "", "comma separated formats, default from preset")
	out := fs.String("out", "", "output directory (default <dir>/exports/<preset>)")
	dpi := fs.Int("dpi", 0, "override the preset resolution")
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	name := export.PresetName(*preset)
	if name != export.PresetWeb && name != export.PresetPrint {
		return fmt.Errorf("%w: unknown preset %q", errUsage, *preset)
	}
	h, err := open(rest[0], ph)
	if err != nil {
		return err
	}
	opt := export.BatchOptions{Preset: name, DPI: *dpi, OutDir: outDir(h, *out, string(name))}
	if *formats != "" {
		opt.Formats = strings.Split(*formats, ",")
	}
	if err := export.BatchExport(h.Project, opt); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "Wrote", opt.OutDir)
	return nil
}

func cmdImages(args []string, ph *storage.ProjectHandle, stdout io.Writer) error {
	if len(args) > 0 && args[0] == "add" {
		return cmdImagesAdd(args[1:], ph, stdout)
	}
	if len(args) > 0 && args[0] == "purge" {
		return cmdImagesPurge(args[1:], ph, stdout)
	}
	rest, err := parse(newFlags("images"), args, 1)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(rest[0])
	if err != nil {
		return err
	}
	if _, err := os.Stat(storage.ImageStorePath(abs)); err != nil {
		_, _ = fmt.Fprintln(stdout, "No images")
		return nil
	}
	store, err := storage.OpenImageStore(abs)
	if err != nil {
		return err
	}
	defer store.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	infos, err := store.ListImages(ctx)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		_, _ = fmt.Fprintln(stdout, "No images")
		return nil
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "KEY\tBYTES\tSHA256\tUPDATED")
	for _, in := range infos {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%.12s\t%s\n", in.Key, in.Size, in.SHA256, in.Updated.Format(time.RFC3339))
	}
	return tw.Flush()
}

func cmdImagesAdd(args []string, ph *storage.ProjectHandle, stdout io.Writer) error {
	rest, err := parse(newFlags("images add"), args, 2)
	if err != nil {
		return err
	}
	h, err := open(rest[0], ph)
	if err != nil {
		return err
	}
	for _, file := range rest[1:] {
		b, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		key := h.Project.Images().AddImageFromFile(file, b)
		_, _ = fmt.Fprintln(stdout, "Added", key)
	}
	return storage.Save(h)
}

func cmdImagesPurge(args []string, ph *storage.ProjectHandle, stdout io.Writer) error {
	rest, err := parse(newFlags("images purge"), args, 1)
	if err != nil {
		return err
	}
	h, err := open(rest[0], ph)
	if err != nil {
		return err
	}
	images := h.Project.Images()
	before := images.Len()
	images.PurgeUnusedImages(h.Project.UsedImageKeys())
	_, _ = fmt.Fprintf(stdout, "Removed %d image(s)\n", before-images.Len())
	return storage.Save(h)
}

func cmdStyles(args []string, ph *storage.ProjectHandle, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: styles needs export or install", errUsage)
	}
	sub := args[0]
	rest, err := parse(newFlags("styles "+sub), args[1:], 2)
	if err != nil {
		return err
	}
	h, err := open(rest[0], ph)
	if err != nil {
		return err
	}
	switch sub {
	case "export":
		if err := stylepack.ExportProjectStyles(h.Project, rest[1]); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(stdout, "Wrote", rest[1])
		return nil
	case "install":
		n, err := stylepack.InstallPack(h.Project, rest[1])
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "Installed %d style librar(ies)\n", n)
		if n == 0 {
			return nil
		}
		return storage.Save(h)
	default:
		return fmt.Errorf("%w: unknown styles command %q", errUsage, sub)
	}
}

package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"voxmesh/internal/config"
	"voxmesh/internal/logx"
	"voxmesh/internal/meshing"
	"voxmesh/internal/palette"
	"voxmesh/internal/profiling"
	"voxmesh/pkg/meshio"
)

func main() {
	var (
		configPath  = flag.String("config", "", "TOML settings file")
		palettePath = flag.String("palette", "", "palette JSON document")
		chunkList   = flag.String("chunks", "", "comma-separated chunk JSON documents")
		outDir      = flag.String("out", "", "output directory")
		format      = flag.String("format", "", "export format: json or obj")
		greedy      = flag.Bool("greedy", false, "greedy-mesh solid voxels")
		batch       = flag.Bool("batch", false, "fold all chunks into one batched result")
		watch       = flag.Bool("watch", false, "rebuild when input files change")
		workers     = flag.Int("workers", 0, "build worker pool size")
		previewDir  = flag.String("preview", "", "write top-down chunk preview PNGs here")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	settings := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logx.Fatal("%v", err)
		}
		settings = loaded
	}

	// Flags set on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "palette":
			settings.Palette = *palettePath
		case "chunks":
			settings.Chunks = splitList(*chunkList)
		case "out":
			settings.OutDir = *outDir
		case "format":
			settings.Format = *format
		case "greedy":
			settings.Greedy = *greedy
		case "batch":
			settings.Batch = *batch
		case "watch":
			settings.Watch = *watch
		case "workers":
			settings.Workers = *workers
		case "preview":
			settings.PreviewDir = *previewDir
		case "v":
			settings.Verbose = *verbose
		}
	})
	settings.Normalize()

	if settings.Verbose {
		logx.SetVerbose()
	}
	if settings.Palette == "" {
		logx.Fatal("no palette document given (use -palette or a config file)")
	}
	if len(settings.Chunks) == 0 {
		logx.Fatal("no chunk documents given (use -chunks or a config file)")
	}

	if err := buildAll(settings); err != nil {
		logx.Fatal("%v", err)
	}
	if settings.Watch {
		watchLoop(settings)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// buildAll loads the palette and every chunk document, builds them (batched,
// pooled, or sequentially), and exports the results.
func buildAll(s *config.Settings) error {
	profiling.Reset()

	entries, err := meshio.LoadPalette(s.Palette)
	if err != nil {
		return err
	}
	pal := palette.New(entries)

	docs := make([]*meshio.ChunkDoc, 0, len(s.Chunks))
	for _, path := range s.Chunks {
		doc, err := meshio.LoadChunk(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		if s.PreviewDir != "" {
			if err := writePreview(s.PreviewDir, path, doc); err != nil {
				logx.Warn("preview for %s failed: %v", path, err)
			}
		}
	}

	switch {
	case s.Batch:
		err = buildBatched(s, pal, docs)
	case s.Workers > 1:
		err = buildPooled(s, pal, docs)
	default:
		err = buildSequential(s, pal, docs)
	}
	if err != nil {
		return err
	}

	logx.Debug("build timings: %s", profiling.TopN(5))
	return nil
}

func buildSequential(s *config.Settings, pal *palette.Palette, docs []*meshio.ChunkDoc) error {
	builder := meshing.NewBuilder()
	builder.UsePalette(pal)
	for i, doc := range docs {
		res := buildOne(builder, doc, s.Greedy)
		if err := export(s, s.Chunks[i], res); err != nil {
			return err
		}
		logx.Info("built %s: %d meshes", doc.ID, len(res.Meshes))
	}
	return nil
}

func buildPooled(s *config.Settings, pal *palette.Palette, docs []*meshio.ChunkDoc) error {
	pool := meshing.NewWorkerPool(s.Workers, len(docs), pal)
	defer pool.Shutdown()

	channels := make([]chan meshing.Result, len(docs))
	for i, doc := range docs {
		channels[i] = make(chan meshing.Result, 1)
		pool.SubmitJobBlocking(meshing.Job{
			Blocks:     doc.Blocks,
			Origin:     doc.Origin,
			Greedy:     s.Greedy,
			ResultChan: channels[i],
		})
	}
	for i, ch := range channels {
		r := <-ch
		if err := export(s, s.Chunks[i], r.Build); err != nil {
			return err
		}
		logx.Info("built %s: %d meshes", docs[i].ID, len(r.Build.Meshes))
	}
	return nil
}

func buildBatched(s *config.Settings, pal *palette.Palette, docs []*meshio.ChunkDoc) error {
	builder := meshing.NewBuilder()
	builder.UsePalette(pal)
	builder.StartBatch()
	for _, doc := range docs {
		buildOne(builder, doc, s.Greedy)
	}
	res := builder.FinishBatch()
	logx.Info("batched %d chunks: %d meshes", len(docs), len(res.Meshes))
	return export(s, "batch", res)
}

func buildOne(b *meshing.Builder, doc *meshio.ChunkDoc, greedy bool) meshing.BuildResult {
	if greedy {
		return b.BuildChunkGreedy(doc.Blocks, doc.Origin[0], doc.Origin[1], doc.Origin[2])
	}
	return b.BuildChunk(doc.Blocks, doc.Origin[0], doc.Origin[1], doc.Origin[2])
}

func export(s *config.Settings, srcPath string, res meshing.BuildResult) error {
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	if s.Format == "obj" {
		return meshio.WriteOBJ(filepath.Join(s.OutDir, base+".obj"), res)
	}
	return meshio.WriteResultJSON(filepath.Join(s.OutDir, fmt.Sprintf("%s.mesh.json", base)), res)
}

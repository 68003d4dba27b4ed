package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/theHooloovoo/Saga/edit"
	"github.com/theHooloovoo/Saga/ingest"
	"github.com/theHooloovoo/Saga/models"
	"github.com/theHooloovoo/Saga/render"
	"github.com/theHooloovoo/Saga/server"
)

func main() {
	log.SetFlags(log.LstdFlags)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd assembles the saga command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "saga",
		Short: "Compose, edit, and render timeline documents",
		Long: `Saga keeps timelines as JSON documents: trees of dated events grouped
under nodes. Subcommands create, edit, combine, and render them as SVG
scenes.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newNewCmd(),
		newAddCmd(),
		newEditCmd(),
		newEditorCmd(),
		newGrepCmd(),
		newCatCmd(),
		newImportCmd(),
		newRenderCmd(),
		newPrintCmd(),
		newServeCmd(),
	)
	return root
}

// newNewCmd creates a blank timeline document.
func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new FILE",
		Short: "Create a blank timeline document at FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeDocument(args[0], models.Blank())
		},
	}
}

// newAddCmd adds an event, prompting for its fields.
func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add FILE PATH",
		Short: "Interactively add an event to FILE at PATH",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			path, err := models.ParsePath(args[1])
			if err != nil {
				return err
			}
			q, err := doc.Query(path)
			if err != nil {
				return err
			}
			if q.Node == nil {
				return fmt.Errorf("cannot add an event under an event")
			}
			ev, err := promptEvent(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			q.Node.Push(models.Value{Event: ev})
			return writeDocument(args[0], doc)
		},
	}
}

// newEditCmd applies one edit command from the argument list.
func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit FILE PATH COMMAND...",
		Short: "Apply an edit command to the element of FILE at PATH",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := models.ParsePath(args[1])
			if err != nil {
				return err
			}
			command, err := edit.Parse(strings.Join(args[2:], " "))
			if err != nil {
				return err
			}
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			q, err := doc.Query(path)
			if err != nil {
				return err
			}
			if err := command.Eval(q); err != nil {
				return err
			}
			return writeDocument(args[0], doc)
		},
	}
}

// newEditorCmd opens the interactive command loop.
func newEditorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "editor FILE PATH",
		Short: "Edit the element of FILE at PATH in an interactive loop",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			path, err := models.ParsePath(args[1])
			if err != nil {
				return err
			}
			q, err := doc.Query(path)
			if err != nil {
				return err
			}
			runEditor(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), q)
			return writeDocument(args[0], doc)
		},
	}
}

// newGrepCmd searches events across documents.
func newGrepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grep QUERY FILE...",
		Short: "List events whose name or descriptions contain QUERY",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			failed := 0
			for _, fp := range args[1:] {
				doc, err := readDocument(fp)
				if err != nil {
					log.Printf("%v", err)
					failed++
					continue
				}
				doc.Data.WalkEventPaths(func(path []int, e *models.Event) bool {
					if e.Matches(query) {
						fmt.Fprintf(cmd.OutOrStdout(), "%s:%s: %s\n", fp, models.FormatPath(path), e.Summary())
					}
					return true
				})
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args)-1)
			}
			return nil
		},
	}
}

// newCatCmd combines documents into one.
func newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat FILE... DEST",
		Short: "Catenate the listed documents into DEST",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs := make([]*models.Document, 0, len(args)-1)
			for _, fp := range args[:len(args)-1] {
				doc, err := readDocument(fp)
				if err != nil {
					return err
				}
				docs = append(docs, doc)
			}
			return writeDocument(args[len(args)-1], models.Catenate(docs))
		},
	}
}

// newImportCmd converts an iCalendar file into a timeline document.
func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import SRC DEST",
		Short: "Import an iCalendar (.ics) file as a timeline document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			doc, err := ingest.NewICSProcessor().Process(data)
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}
			return writeDocument(args[1], doc)
		},
	}
}

// newRenderCmd renders documents to SVG files.
func newRenderCmd() *cobra.Command {
	var stylePath string
	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Write an SVG scene next to each listed document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := render.LoadStyle(stylePath)
			if err != nil {
				return err
			}
			renderer := &render.SVGRenderer{}
			failed := 0
			for _, fp := range args {
				if err := renderFile(renderer, style, fp); err != nil {
					log.Printf("%v", err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&stylePath, "style", "", "YAML style file controlling colors and sketching")
	return cmd
}

// renderFile renders one document to a sibling .svg file.
func renderFile(renderer render.Renderer, style *render.Style, fp string) error {
	doc, err := readDocument(fp)
	if err != nil {
		return err
	}
	svg, err := renderer.Render(doc, style)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", fp, err)
	}
	out := strings.TrimSuffix(fp, filepath.Ext(fp)) + ".svg"
	if err := os.WriteFile(out, svg, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	log.Printf("Wrote %s", out)
	return nil
}

// newPrintCmd prints document overviews to stdout.
func newPrintCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "print FILE...",
		Short: "Print an overview of each listed document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, fp := range args {
				doc, err := readDocument(fp)
				if err != nil {
					log.Printf("%v", err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", fp)
				fmt.Fprint(cmd.OutOrStdout(), doc.Print(verbose))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include offsets, scales, and descriptions")
	return cmd
}

// newServeCmd serves documents over HTTP for browser preview.
func newServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve [FILE...]",
		Short: "Serve the listed documents for browser preview",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := server.NewStore()
			for _, fp := range args {
				doc, err := readDocument(fp)
				if err != nil {
					return err
				}
				store.Add(filepath.Base(fp), doc)
			}

			// Handle OS signals for graceful shutdown.
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sig
				log.Println("Received shutdown signal, gracefully shutting down...")
				cancel()
			}()

			return server.New(store, nil).Start(ctx, port)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")
	return cmd
}

// readDocument loads and parses one timeline document.
func readDocument(path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := models.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// writeDocument serializes doc and writes it whole to path.
func writeDocument(path string, doc *models.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("serializing %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

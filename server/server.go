// Package server previews timeline documents over HTTP: an index of loaded
// documents, an upload form, rendered SVG views, and a JSON API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theHooloovoo/Saga/models"
	"github.com/theHooloovoo/Saga/render"
)

// Entry is one stored document and the name it was loaded under.
type Entry struct {
	ID   string
	Name string
	Doc  *models.Document
}

// Store holds the documents available for preview, keyed by ID. Handlers
// run concurrently, so access is serialized.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Entry
	order   []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*Entry)}
}

// Add stores a document under a fresh ID and returns the ID.
func (s *Store) Add(name string, doc *models.Document) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New().String()
	s.entries[id] = &Entry{ID: id, Name: name, Doc: doc}
	s.order = append(s.order, id)
	return id
}

// Get looks a document up by ID.
func (s *Store) Get(id string) (*Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	return e, ok
}

// List returns the stored entries in insertion order.
func (s *Store) List() []*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	return out
}

// Server serves stored documents for preview.
type Server struct {
	store    *Store
	style    *render.Style
	renderer render.Renderer
}

// New creates a server around a store. A nil style means the defaults.
func New(store *Store, style *render.Style) *Server {
	if style == nil {
		style = render.DefaultStyle()
	}
	return &Server{
		store:    store,
		style:    style,
		renderer: &render.SVGRenderer{},
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/view", s.handleView)
	mux.HandleFunc("/api/document", s.handleAPIDocument)
	return mux
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.ListenAndServe()
	}()
	log.Printf("Serving timeline documents on port %d...", port)

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleIndex renders the main page: the loaded documents and an upload
// form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Saga - Timeline Documents</title>
  <style>
    body { font-family: 'Helvetica Neue', Arial, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; color: #333; }
    .container { max-width: 900px; margin: 0 auto; background: white; padding: 30px; border-radius: 8px; }
    h1 { margin-top: 0; border-bottom: 2px solid #eee; padding-bottom: 10px; }
    .upload-section { margin: 20px 0; padding: 20px; background: #f9f9f9; border-radius: 4px; }
    .btn { background: #2e3d50; color: white; border: none; padding: 10px 20px; border-radius: 4px; cursor: pointer; }
    li { margin: 6px 0; }
  </style>
</head>
<body>
  <div class="container">
    <h1>Saga: Timeline Documents</h1>

    <div class="upload-section">
      <h2>Upload Document</h2>
      <form action="/upload" method="post" enctype="multipart/form-data">
        <input type="file" name="document" accept=".json" required>
        <button type="submit" class="btn">View</button>
      </form>
    </div>

    <h2>Loaded Documents</h2>
    <ul>
`)
	for _, e := range s.store.List() {
		fmt.Fprintf(w, `      <li><a href="/view?id=%s">%s</a> (<a href="/api/document?id=%s">json</a>)</li>`+"\n",
			e.ID, html.EscapeString(e.Name), e.ID)
	}
	fmt.Fprint(w, `    </ul>
  </div>
</body>
</html>
`)
}

// handleUpload stores an uploaded document and redirects to its view.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Error parsing form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		http.Error(w, "Error retrieving file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Error reading file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	doc, err := models.Decode(data)
	if err != nil {
		http.Error(w, "Error parsing document: "+err.Error(), http.StatusBadRequest)
		return
	}

	id := s.store.Add(header.Filename, doc)
	http.Redirect(w, r, "/view?id="+id, http.StatusSeeOther)
}

// handleView renders a stored document as SVG.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing document ID", http.StatusBadRequest)
		return
	}

	entry, ok := s.store.Get(id)
	if !ok {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}

	output, err := s.renderer.Render(entry.Doc, s.style)
	if err != nil {
		http.Error(w, "Error rendering document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(output)
}

// handleAPIDocument serves a stored document as JSON.
func (s *Server) handleAPIDocument(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing document ID", http.StatusBadRequest)
		return
	}

	entry, ok := s.store.Get(id)
	if !ok {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.Encode(entry.Doc)
}

package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/citeflex/citeflex/internal/config"
	"github.com/citeflex/citeflex/internal/core"
	"github.com/citeflex/citeflex/internal/core/router"
	"github.com/citeflex/citeflex/internal/core/style"
	"github.com/citeflex/citeflex/internal/docx"
	"github.com/citeflex/citeflex/internal/llm"
	"github.com/citeflex/citeflex/internal/providers"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type Server struct {
	Processor *core.Processor
	Router    *router.Router
	cfg       *config.Config
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}

	// Env vars override file config
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("COURTLISTENER_TOKEN"); v != "" {
		cfg.Providers.CourtListenerToken = v
	}

	httpClient := providers.NewHTTPClient()
	engines := router.Engines{
		Legal:       providers.NewCourtListener(cfg.Providers.CourtListenerBaseURL, cfg.Providers.CourtListenerToken, httpClient),
		Crossref:    providers.NewCrossref("", httpClient),
		OpenAlex:    providers.NewOpenAlex("", httpClient),
		Semantic:    providers.NewSemanticScholar("", httpClient),
		PubMed:      providers.NewPubMed("", httpClient),
		GoogleBooks: providers.NewGoogleBooks("", httpClient),
		OpenLibrary: providers.NewOpenLibrary("", httpClient),
		Pages:       providers.NewPageExtractor(httpClient),
	}

	var oracle router.Oracle
	if cfg.LLM.Provider != "" {
		client, err := llm.NewClient(context.Background(), cfg.LLM)
		if err != nil {
			log.Printf("AI classifier disabled: %v", err)
		} else {
			oracle = llm.NewClassifier(client)
		}
	}

	resolver := router.New(engines, oracle)
	if cfg.Router.ParallelTimeoutSeconds > 0 {
		resolver.SetDeadline(time.Duration(cfg.Router.ParallelTimeoutSeconds) * time.Second)
	}

	return &Server{
		Processor: core.NewProcessor(resolver),
		Router:    resolver,
		cfg:       cfg,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = s.cfg.Server.MaxUploadMB << 20

	r.GET("/health", s.Health)
	r.POST("/process", s.Process)
	r.POST("/resolve", s.Resolve)
	r.POST("/notes/update", s.UpdateNote)

	return r
}

func (s *Server) Port() string {
	return s.cfg.Server.Port
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Process accepts a multipart .docx upload and rewrites its citations.
// The response is the transformed document, or a JSON report of per-note
// results when ?report=1 is set.
func (s *Server) Process(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".docx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload a .docx file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}

	opts := core.ProcessOptions{
		Style:    c.DefaultPostForm("style", style.ChicagoName),
		AddLinks: c.DefaultPostForm("add_links", "true") != "false",
	}

	runID := uuid.NewString()[:8]
	c.Header("X-Run-ID", runID)
	log.Printf("[Server] Run %s: processing %s (%d bytes)", runID, fileHeader.Filename, len(fileBytes))

	processed, results, err := s.Processor.ProcessDocument(c.Request.Context(), fileBytes, opts)
	if err != nil {
		log.Printf("[Server] Run %s failed: %v", runID, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("Could not process document: %v", err)})
		return
	}

	if c.Query("report") == "1" {
		c.JSON(http.StatusOK, gin.H{"run_id": runID, "results": results})
		return
	}

	outName := strings.TrimSuffix(fileHeader.Filename, ".docx") + "_fixed.docx"
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, outName))
	c.Data(http.StatusOK, docxContentType, processed)
}

type ResolveRequest struct {
	Query string `json:"query" binding:"required"`
	Style string `json:"style"`
}

// Resolve looks up a single citation query without touching a document.
func (s *Server) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Style == "" {
		req.Style = style.ChicagoName
	}

	meta, formatted := s.Router.Resolve(c.Request.Context(), req.Query, req.Style)
	if meta == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No metadata found", "query": req.Query})
		return
	}

	c.JSON(http.StatusOK, gin.H{"metadata": meta, "formatted": formatted})
}

// UpdateNote rewrites one note of an already-processed document. The
// document and replacement content arrive as multipart fields.
func (s *Server) UpdateNote(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	var noteID int
	if _, err := fmt.Sscanf(c.PostForm("note_id"), "%d", &noteID); err != nil || noteID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note_id"})
		return
	}

	content := c.PostForm("content")
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing content"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}

	updated, err := docx.UpdateNote(buf.Bytes(), noteID, content)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="updated.docx"`)
	c.Data(http.StatusOK, docxContentType, updated)
}

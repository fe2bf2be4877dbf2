package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"server/internal/access"
	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/pdf"
	"server/pkg/zip"
)

// multipartMemoryLimit is the in-memory threshold for multipart parsing;
// larger uploads spill to temp files. Plan ceilings are enforced by the gate.
const multipartMemoryLimit = 64 << 20

type toolDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	MinFiles    int    `json:"min_files"`
	MaxFiles    int    `json:"max_files,omitempty"`
	Available   bool   `json:"available"`
}

func (a *App) ToolsList(w http.ResponseWriter, r *http.Request) {
	items := make([]toolDTO, 0, len(domain.Tools))
	for _, t := range domain.Tools {
		_, available := a.Tools.Runner(t.ID)
		items = append(items, toolDTO{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Category:    string(t.Category),
			MinFiles:    t.MinFiles,
			MaxFiles:    t.MaxFiles,
			Available:   available,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) ToolRun(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	toolID := chi.URLParam(r, "tool")
	tool, ok := domain.ToolByID(toolID)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", domain.ErrUnknownTool.Error())
		return
	}
	if _, ok := a.Tools.Runner(tool.ID); !ok {
		a.error(w, http.StatusNotImplemented, "unavailable", "tool processor unavailable")
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	form := r.MultipartForm
	uploads := form.File["files"]
	if len(uploads) < tool.MinFiles {
		a.error(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("%s needs at least %d file(s)", tool.Name, tool.MinFiles))
		return
	}
	if tool.MaxFiles > 0 && len(uploads) > tool.MaxFiles {
		a.error(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("%s accepts at most %d file(s)", tool.Name, tool.MaxFiles))
		return
	}

	jobKey := "jobs/" + uuid.NewString()
	defer func() {
		if err := a.Store.RemoveAll(jobKey); err != nil {
			a.Logger.Warn().Err(err).Str("job", jobKey).Msg("workspace cleanup failed")
		}
	}()

	var (
		inputPaths []string
		files      []access.FileInfo
	)
	for i, fh := range uploads {
		src, err := fh.Open()
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "unreadable upload")
			return
		}
		key := fmt.Sprintf("%s/in/%d-%s", jobKey, i, filepath.Base(fh.Filename))
		storedKey, err := a.Store.WriteStream(r.Context(), key, src)
		src.Close()
		if err != nil {
			a.Logger.Error().Err(err).Msg("staging upload failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to stage upload")
			return
		}
		path, err := a.Store.Path(storedKey)
		if err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to stage upload")
			return
		}
		inputPaths = append(inputPaths, path)
		files = append(files, access.FileInfo{Name: fh.Filename, SizeBytes: fh.Size})
	}

	outDir, err := a.Store.Path(jobKey + "/out")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to prepare workspace")
		return
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to prepare workspace")
		return
	}

	req := access.ToolRequest{
		UserID:  userID,
		Tool:    tool,
		Files:   files,
		Country: middleware.CountryFromContext(r.Context()),
	}
	pdfReq := pdf.Request{
		InputPaths: inputPaths,
		OutputDir:  outDir,
		Options:    parseToolOptions(r),
	}

	result, err := a.Gate.ProcessTool(r.Context(), req, func(ctx context.Context) (any, error) {
		return a.Tools.Run(ctx, tool.ID, pdfReq)
	})
	if err != nil {
		a.toolError(w, err)
		return
	}

	outputs, _ := result.([]string)
	if len(outputs) == 0 {
		a.error(w, http.StatusInternalServerError, "internal", "no output produced")
		return
	}
	if len(outputs) == 1 {
		a.serveFile(w, outputs[0])
		return
	}
	a.serveArchive(w, tool.ID, outputs)
}

func (a *App) toolError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, domain.ErrNoCredits):
		a.error(w, http.StatusForbidden, "no_credits", err.Error())
	case errors.Is(err, domain.ErrFileTooLarge):
		a.error(w, http.StatusRequestEntityTooLarge, "file_too_large", err.Error())
	case errors.Is(err, domain.ErrUnknownTool):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrToolUnavailable):
		a.error(w, http.StatusNotImplemented, "unavailable", err.Error())
	default:
		a.error(w, http.StatusUnprocessableEntity, "processing_failed", err.Error())
	}
}

func (a *App) serveFile(w http.ResponseWriter, path string) {
	f, err := os.Open(path)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to read output")
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, f)
}

func (a *App) serveArchive(w http.ResponseWriter, toolID string, outputs []string) {
	assets := make([]zip.Asset, 0, len(outputs))
	for _, path := range outputs {
		data, err := os.ReadFile(path)
		if err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to read output")
			return
		}
		assets = append(assets, zip.Asset{Filename: filepath.Base(path), MIME: "application/pdf", Data: data})
	}
	archive := zip.ArchiveAssets(assets)
	if archive == nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to archive output")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+toolID+`-output.zip"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func parseToolOptions(r *http.Request) pdf.Options {
	opts := pdf.Options{
		WatermarkText: r.FormValue("text"),
		Password:      r.FormValue("password"),
		OwnerPassword: r.FormValue("owner_password"),
		Title:         r.FormValue("title"),
		Author:        r.FormValue("author"),
		Subject:       r.FormValue("subject"),
	}
	if raw := strings.TrimSpace(r.FormValue("pages")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if token := strings.TrimSpace(part); token != "" {
				opts.Pages = append(opts.Pages, token)
			}
		}
	}
	if v, err := strconv.Atoi(r.FormValue("rotation")); err == nil {
		opts.Rotation = v
	}
	if v, err := strconv.Atoi(r.FormValue("span")); err == nil {
		opts.Span = v
	}
	return opts
}

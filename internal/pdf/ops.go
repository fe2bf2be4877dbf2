package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

const (
	watermarkDesc   = "font:Helvetica, points:48, pos:c, rot:45, op:0.3, fillcol:#808080"
	pageNumberDesc  = "font:Helvetica, points:12, pos:bc, off:0 10, rot:0"
	signatureDesc   = "pos:br, off:-20 20, scale:0.25 rel, rot:0"
	pageNumberStamp = "%p of %P"
)

func conf() *model.Configuration {
	return model.NewDefaultConfiguration()
}

func outPath(req Request, name string) string {
	return filepath.Join(req.OutputDir, name)
}

// renamed derives an output file name from the first input.
func renamed(req Request, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(req.InputPaths[0]), filepath.Ext(req.InputPaths[0]))
	return outPath(req, base+"-"+suffix+".pdf")
}

func singleInput(req Request) (string, error) {
	if len(req.InputPaths) != 1 {
		return "", fmt.Errorf("expected exactly one input file, got %d", len(req.InputPaths))
	}
	return req.InputPaths[0], nil
}

// Merge combines all inputs, in upload order, into one document.
func (s *Service) Merge(ctx context.Context, req Request) ([]string, error) {
	if len(req.InputPaths) < 2 {
		return nil, errors.New("merge needs at least two input files")
	}
	out := outPath(req, "merged.pdf")
	if err := api.MergeCreateFile(req.InputPaths, out, false, conf()); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	return []string{out}, nil
}

// Split writes one document per span of pages (default: single pages).
func (s *Service) Split(ctx context.Context, req Request) ([]string, error) {
	in, err := singleInput(req)
	if err != nil {
		return nil, err
	}
	span := req.Options.Span
	if span <= 0 {
		span = 1
	}
	if err := api.SplitFile(in, req.OutputDir, span, conf()); err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	return collectOutputs(req.OutputDir, in)
}

// ExtractPages keeps only the selected pages.
func (s *Service) ExtractPages(ctx context.Context, req Request) ([]string, error) {
	in, err := singleInput(req)
	if err != nil {
		return nil, err
	}
	if len(req.Options.Pages) == 0 {
		return nil, errors.New("page selection is required")
	}
	out := renamed(req, "extracted")
	if err := api.TrimFile(in, out, req.Options.Pages, conf()); err != nil {
		return nil, fmt.Errorf("extract pages: %w", err)
	}
	return []string{out}, nil
}

// RemovePages deletes the selected pages.
func (s *Service) RemovePages(ctx context.Context, req Request) ([]string, error) {
	in, err := singleInput(req)
	if err != nil {
		return nil, err
	}
	if len(req.Options.Pages) == 0 {
		return nil, errors.New("page selection is required")
	}
	out := renamed(req, "trimmed")
	if err := api.RemovePagesFile(in, out, req.Options.Pages, conf()); err != nil {
		return nil, fmt.Errorf("remove pages: %w", err)
	}
	return []string{out}, nil
}

// Organize rebuilds the document with pages in the requested order.
func (s *Service) Organize(ctx context.Context, req Request) ([]string, error) {
	in, err := singleInput(req)
	if err != nil {
		return nil, err
	}
	if len(req.Options.Pages) == 0 {
		return nil, errors.New("page order is required")
	}
	out := renamed(req, "organized")
	if err := api.CollectFile(in, out, req.Options.Pages, conf()); err != nil {
		return nil, fmt.Errorf("organize: %w", err)
	}
	return []string{out}, nil
}

// Compress rewrites the document through the optimizer.
func (s *Service) Compress(ctx context.Context, req Request) ([]string, error) {
	in, err := singleInput(req)
	if err != nil {
		return nil, err
	}
	out := renamed(req, "compressed")
	if err := api.OptimizeFile(in, out, conf()); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	return []string{out}, nil
}

// Repair validates leniently and rewrites the cross-reference structures.
func (s *Service) Repair(ctx context.Context, req Request) ([]string, error) {
	in, err := singleInput(req)
	if err != nil {
		return nil, err
	}
	c := conf()
	c.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(in, c); err != nil {
		return nil, fmt.Errorf("repair: document beyond recovery: %w", err)
	}
	out := renamed(req, "repaired")
	if err := api.OptimizeFile(in, out, c); err != nil {
		return nil, fmt.Errorf("repair: %w", err)
	}
	return []string{out}, nil
}

// Rotate rotates the selected pages (all pages when none given).
func (s *Service) Rotate(ctx context.Context, req Request) ([]string, error) {
	in, err := singleInput(req)
	if err != nil {
		return nil, err
	}
	rotation := req.Options.Rotation
	switch rotation {
	case 90, 180, 270, -90:
	default:
		return nil, fmt.Errorf("unsupported rotation %d", rotation)
	}
	out := renamed(req, "rotated")
	if err := api.RotateFile(in, out, rotation, req.Options.Pages, conf()); err != nil {
		return nil, fmt.Errorf("rotate: %w", err)
	}
	return []string{out}, nil
}

// Watermark stamps the given text diagonally over every page.
func (s *Service) Watermark(ctx context.Context, req Request) ([]string, error) {
	in, err := singleInput(req)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(req.Options.WatermarkText)
	if text == "" {
		return nil, errors.New("watermark text is required")
	}
	wm, err := api.TextWatermark(text, watermarkDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("watermark: %w", err)
	}
	out := renamed(req, "watermarked")
	if err := api.AddWatermarksFile(in, out, nil, wm, conf()); err != nil {
		return nil, fmt.Errorf("watermark: %w", err)
	}
	return []string{out}, nil
}

// PageNumbers stamps "n of m" at the bottom of every page.
func (s *Service) PageNumbers(ctx context.Context, req Request) ([]string, error) {
	in, err := singleInput(req)
	if err != nil {
		return nil, err
	}
	wm, err := api.TextWatermark(pageNumberStamp, pageNumberDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("page numbers: %w", err)
	}
	out := renamed(req, "numbered")
	if err := api.AddWatermarksFile(in, out, nil, wm, conf()); err != nil {
		return nil, fmt.Errorf("page numbers: %w", err)
	}
	return []string{out}, nil
}

// Sign stamps the second upload (a signature image) onto the document. The
// selection defaults to all pages unless the caller restricts it.
func (s *Service) Sign(ctx context.Context, req Request) ([]string, error) {
	if len(req.InputPaths) != 2 {
		return nil, errors.New("sign needs a document and a signature image")
	}
	doc, img := req.InputPaths[0], req.InputPaths[1]
	if strings.EqualFold(filepath.Ext(doc), ".png") || strings.EqualFold(filepath.Ext(doc), ".jpg") {
		doc, img = img, doc
	}
	wm, err := api.ImageWatermark(img, signatureDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	out := outPath(req, strings.TrimSuffix(filepath.Base(doc), filepath.Ext(doc))+"-signed.pdf")
	if err := api.AddWatermarksFile(doc, out, req.Options.Pages, wm, conf()); err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return []string{out}, nil
}

// Protect encrypts the document with the supplied password.
func (s *Service) Protect(ctx context.Context, req Request) ([]string, error) {
	in, err := singleInput(req)
	if err != nil {
		return nil, err
	}
	if req.Options.Password == "" {
		return nil, errors.New("password is required")
	}
	c := conf()
	c.UserPW = req.Options.Password
	c.OwnerPW = req.Options.OwnerPassword
	if c.OwnerPW == "" {
		c.OwnerPW = req.Options.Password
	}
	out := renamed(req, "protected")
	if err := api.EncryptFile(in, out, c); err != nil {
		return nil, fmt.Errorf("protect: %w", err)
	}
	return []string{out}, nil
}

// Unlock removes encryption given the current password.
func (s *Service) Unlock(ctx context.Context, req Request) ([]string, error) {
	in, err := singleInput(req)
	if err != nil {
		return nil, err
	}
	if req.Options.Password == "" {
		return nil, errors.New("password is required")
	}
	c := conf()
	c.UserPW = req.Options.Password
	c.OwnerPW = req.Options.Password
	out := renamed(req, "unlocked")
	if err := api.DecryptFile(in, out, c); err != nil {
		return nil, fmt.Errorf("unlock: %w", err)
	}
	return []string{out}, nil
}

// Metadata sets the document information properties.
func (s *Service) Metadata(ctx context.Context, req Request) ([]string, error) {
	in, err := singleInput(req)
	if err != nil {
		return nil, err
	}
	props := map[string]string{}
	if req.Options.Title != "" {
		props["Title"] = req.Options.Title
	}
	if req.Options.Author != "" {
		props["Author"] = req.Options.Author
	}
	if req.Options.Subject != "" {
		props["Subject"] = req.Options.Subject
	}
	if len(props) == 0 {
		return nil, errors.New("no properties given")
	}
	out := renamed(req, "metadata")
	if err := api.AddPropertiesFile(in, out, props, conf()); err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	return []string{out}, nil
}

// ImagesToPDF builds one document out of the uploaded images.
func (s *Service) ImagesToPDF(ctx context.Context, req Request) ([]string, error) {
	if len(req.InputPaths) == 0 {
		return nil, errors.New("at least one image is required")
	}
	out := outPath(req, "images.pdf")
	if err := api.ImportImagesFile(req.InputPaths, out, nil, conf()); err != nil {
		return nil, fmt.Errorf("images to pdf: %w", err)
	}
	return []string{out}, nil
}

// collectOutputs lists the PDF files a multi-output tool wrote to outDir,
// excluding the staged input itself.
func collectOutputs(outDir, input string) ([]string, error) {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		full := filepath.Join(outDir, e.Name())
		if full == input {
			continue
		}
		out = append(out, full)
	}
	if len(out) == 0 {
		return nil, errors.New("no output produced")
	}
	return out, nil
}

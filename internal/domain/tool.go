package domain

// ToolCategory groups catalog entries for listing purposes.
type ToolCategory string

const (
	ToolCategoryOrganize ToolCategory = "organize"
	ToolCategoryOptimize ToolCategory = "optimize"
	ToolCategoryEdit     ToolCategory = "edit"
	ToolCategorySecurity ToolCategory = "security"
	ToolCategoryConvert  ToolCategory = "convert"
)

// Tool describes one catalog entry. Tool identity does not gate access:
// every plan may invoke every tool, the gate only checks credits and file
// size. MinFiles/MaxFiles bound the multipart upload; MaxFiles == 0 means
// unbounded.
type Tool struct {
	ID          string
	Name        string
	Description string
	Category    ToolCategory
	MinFiles    int
	MaxFiles    int
}

// Tools is the product catalog. Entries without a registered runner are
// still listed; invoking them reports the processor as unavailable.
var Tools = []Tool{
	{ID: "merge", Name: "Merge PDF", Description: "Combine PDFs into a single document", Category: ToolCategoryOrganize, MinFiles: 2},
	{ID: "split", Name: "Split PDF", Description: "Split a PDF into single-page documents", Category: ToolCategoryOrganize, MinFiles: 1, MaxFiles: 1},
	{ID: "extract-pages", Name: "Extract pages", Description: "Keep only the selected pages", Category: ToolCategoryOrganize, MinFiles: 1, MaxFiles: 1},
	{ID: "remove-pages", Name: "Remove pages", Description: "Delete the selected pages", Category: ToolCategoryOrganize, MinFiles: 1, MaxFiles: 1},
	{ID: "organize", Name: "Organize PDF", Description: "Reorder pages", Category: ToolCategoryOrganize, MinFiles: 1, MaxFiles: 1},
	{ID: "compress", Name: "Compress PDF", Description: "Reduce file size", Category: ToolCategoryOptimize, MinFiles: 1, MaxFiles: 1},
	{ID: "repair", Name: "Repair PDF", Description: "Recover a damaged document", Category: ToolCategoryOptimize, MinFiles: 1, MaxFiles: 1},
	{ID: "rotate", Name: "Rotate PDF", Description: "Rotate pages", Category: ToolCategoryEdit, MinFiles: 1, MaxFiles: 1},
	{ID: "watermark", Name: "Add watermark", Description: "Stamp text over every page", Category: ToolCategoryEdit, MinFiles: 1, MaxFiles: 1},
	{ID: "page-numbers", Name: "Add page numbers", Description: "Number the pages", Category: ToolCategoryEdit, MinFiles: 1, MaxFiles: 1},
	{ID: "sign", Name: "Sign PDF", Description: "Stamp a signature image onto the document", Category: ToolCategoryEdit, MinFiles: 2, MaxFiles: 2},
	{ID: "metadata", Name: "Edit metadata", Description: "Set document properties", Category: ToolCategoryEdit, MinFiles: 1, MaxFiles: 1},
	{ID: "bookmarks", Name: "Edit bookmarks", Description: "Replace the document outline", Category: ToolCategoryEdit, MinFiles: 1, MaxFiles: 1},
	{ID: "protect", Name: "Protect PDF", Description: "Encrypt with a password", Category: ToolCategorySecurity, MinFiles: 1, MaxFiles: 1},
	{ID: "unlock", Name: "Unlock PDF", Description: "Remove a known password", Category: ToolCategorySecurity, MinFiles: 1, MaxFiles: 1},
	{ID: "compare", Name: "Compare PDF", Description: "Compare two documents", Category: ToolCategoryEdit, MinFiles: 2, MaxFiles: 2},
	{ID: "ocr", Name: "OCR PDF", Description: "Recognize text in scanned documents", Category: ToolCategoryConvert, MinFiles: 1, MaxFiles: 1},
	{ID: "pdf-to-word", Name: "PDF to Word", Description: "Convert to DOCX", Category: ToolCategoryConvert, MinFiles: 1, MaxFiles: 1},
	{ID: "pdf-to-excel", Name: "PDF to Excel", Description: "Convert to XLSX", Category: ToolCategoryConvert, MinFiles: 1, MaxFiles: 1},
	{ID: "pdf-to-powerpoint", Name: "PDF to PowerPoint", Description: "Convert to PPTX", Category: ToolCategoryConvert, MinFiles: 1, MaxFiles: 1},
	{ID: "word-to-pdf", Name: "Word to PDF", Description: "Convert DOCX to PDF", Category: ToolCategoryConvert, MinFiles: 1, MaxFiles: 1},
	{ID: "excel-to-pdf", Name: "Excel to PDF", Description: "Convert XLSX to PDF", Category: ToolCategoryConvert, MinFiles: 1, MaxFiles: 1},
	{ID: "powerpoint-to-pdf", Name: "PowerPoint to PDF", Description: "Convert PPTX to PDF", Category: ToolCategoryConvert, MinFiles: 1, MaxFiles: 1},
	{ID: "pdf-to-jpg", Name: "PDF to JPG", Description: "Export pages as images", Category: ToolCategoryConvert, MinFiles: 1, MaxFiles: 1},
	{ID: "jpg-to-pdf", Name: "JPG to PDF", Description: "Build a PDF from images", Category: ToolCategoryConvert, MinFiles: 1},
	{ID: "html-to-pdf", Name: "HTML to PDF", Description: "Render a web page as PDF", Category: ToolCategoryConvert, MinFiles: 1, MaxFiles: 1},
}

// ToolByID looks up a catalog entry.
func ToolByID(id string) (Tool, bool) {
	for _, t := range Tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}

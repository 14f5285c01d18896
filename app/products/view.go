package products

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/mytheresa/product-form/models"
)

// Row is one table row. Values are rendered as text, never as markup.
type Row struct {
	ID          int64
	Name        string
	Price       string
	Description string
	Editing     bool
	Removing    bool
}

// Table is the rendered body: rows in list order, or the placeholder when
// there are none.
type Table struct {
	Rows        []Row
	Placeholder string
}

type Confirmation struct {
	ID     int64
	Prompt string
}

// Page is everything the template needs.
type Page struct {
	Mode           Mode
	Presentation   Presentation
	Form           FormInput
	Table          Table
	Alert          string
	Notice         string
	Confirm        *Confirmation
	ConfirmDeletes bool
	Refresh        bool
}

func buildTable(products []models.Product, removing map[int64]Timer, editingID *int64) Table {
	if len(products) == 0 {
		return Table{Placeholder: PlaceholderMessage}
	}

	rows := make([]Row, len(products))
	for i, p := range products {
		_, pending := removing[p.ID]
		rows[i] = Row{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.FormattedPrice(),
			Description: p.Description,
			Editing:     editingID != nil && *editingID == p.ID,
			Removing:    pending,
		}
	}
	return Table{Rows: rows}
}

//go:embed templates/*.html
var templateFS embed.FS

// Renderer writes pages as HTML.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, page Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "page.html", page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

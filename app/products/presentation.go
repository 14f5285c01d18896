package products

// Mode is the state of the single form.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	default:
		return "create"
	}
}

// Presentation is what the form looks like in a given mode.
type Presentation struct {
	SubmitLabel string
	SubmitColor string
	Banner      string
}

const (
	PlaceholderMessage = "No hay productos registrados."
	DeletePrompt       = "¿Seguro que deseas eliminar este producto?"
	DeletedNotice      = "Producto eliminado correctamente."
)

var presentations = map[Mode]Presentation{
	ModeCreate: {
		SubmitLabel: "Guardar",
		SubmitColor: "#3a87ff",
	},
	ModeEdit: {
		SubmitLabel: "Actualizar producto",
		SubmitColor: "#ffaa00",
		Banner:      "Modo edición: estás actualizando un producto.",
	},
}

func presentationFor(m Mode) Presentation {
	return presentations[m]
}

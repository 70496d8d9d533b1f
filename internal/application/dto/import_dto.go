package dto

// Acciones posibles de una fila en la importación CSV.
const (
	ImportActionCreate  = "create"
	ImportActionUpdate  = "update"
	ImportActionSkip    = "skip"
	ImportActionInvalid = "invalid"
)

// Modos de importación.
const (
	ImportModeCreate = "create"
	ImportModeUpdate = "update"
	ImportModeUpsert = "upsert"
)

// ImportRowResult resultado por fila. RowNumber es la línea del archivo (encabezado = 1).
type ImportRowResult struct {
	RowNumber int      `json:"row_number"`
	SKU       string   `json:"sku"`
	Action    string   `json:"action"`
	Errors    []string `json:"errors"`
}

// ImportSummary conteo de filas por acción.
type ImportSummary struct {
	Create  int `json:"create"`
	Update  int `json:"update"`
	Skip    int `json:"skip"`
	Invalid int `json:"invalid"`
}

// ImportReport respuesta de POST /api/products/import.
type ImportReport struct {
	Mode    string            `json:"mode"`
	Applied bool              `json:"applied"`
	Summary ImportSummary     `json:"summary"`
	Rows    []ImportRowResult `json:"rows"`
}

// Count suma la fila al contador de su acción.
func (s *ImportSummary) Count(action string) {
	switch action {
	case ImportActionCreate:
		s.Create++
	case ImportActionUpdate:
		s.Update++
	case ImportActionSkip:
		s.Skip++
	case ImportActionInvalid:
		s.Invalid++
	}
}

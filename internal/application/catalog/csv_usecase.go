// Package catalog implementa la importación y exportación CSV del catálogo de productos.
package catalog

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// Columns encabezado esperado en la importación y emitido en la exportación.
var Columns = []string{"sku", "name", "category", "supplier", "quantity", "cost", "price", "min_stock"}

// CSVUseCase importa (preview o aplicación) y exporta productos en CSV.
type CSVUseCase struct {
	txRunner repository.TxRunner
	repo     repository.ProductRepository
}

// NewCSVUseCase construye el caso de uso.
func NewCSVUseCase(txRunner repository.TxRunner, repo repository.ProductRepository) *CSVUseCase {
	return &CSVUseCase{txRunner: txRunner, repo: repo}
}

// importRow valores de una fila; nil significa celda vacía (se conserva el valor actual al actualizar).
type importRow struct {
	sku, name          string
	category, supplier *string
	quantity, minStock *int64
	cost, price        *decimal.Decimal
}

// Import procesa el CSV fila por fila. Cada fila es independiente: una fila inválida o que
// falle al persistir se reporta como invalid sin afectar a las demás.
// Con apply=false solo se genera el reporte (nada se persiste).
func (uc *CSVUseCase) Import(ctx context.Context, data []byte, mode string, apply bool) (*dto.ImportReport, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = dto.ImportModeUpsert
	}
	if mode != dto.ImportModeCreate && mode != dto.ImportModeUpdate && mode != dto.ImportModeUpsert {
		return nil, domain.NewValidationError("mode", "debe ser create, update o upsert")
	}

	br := bufio.NewReader(decodeInput(data))
	r := csv.NewReader(br)
	r.Comma = detectDelimiter(br)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.NewValidationError("file", "archivo vacío")
	}
	if err != nil {
		return nil, domain.NewValidationError("file", "CSV ilegible: "+err.Error())
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	report := &dto.ImportReport{Mode: mode, Applied: apply, Rows: []dto.ImportRowResult{}}
	seen := make(map[string]int)

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			res := dto.ImportRowResult{RowNumber: pe.StartLine, Action: dto.ImportActionInvalid, Errors: []string{pe.Err.Error()}}
			report.Rows = append(report.Rows, res)
			report.Summary.Count(res.Action)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		if blankRecord(record) {
			continue
		}
		line, _ := r.FieldPos(0)

		res, err := uc.processRow(ctx, record, cols, line, mode, apply, seen)
		if err != nil {
			return nil, err
		}
		report.Rows = append(report.Rows, res)
		report.Summary.Count(res.Action)
	}
	return report, nil
}

func (uc *CSVUseCase) processRow(
	ctx context.Context,
	record []string,
	cols map[string]int,
	line int,
	mode string,
	apply bool,
	seen map[string]int,
) (dto.ImportRowResult, error) {
	row, verr := parseRow(record, cols)
	res := dto.ImportRowResult{RowNumber: line, SKU: row.sku, Errors: []string{}}

	if row.sku != "" {
		if first, dup := seen[row.sku]; dup {
			verr.Add("sku", fmt.Sprintf("repetido en la línea %d", first))
		} else {
			seen[row.sku] = line
		}
	}
	if verr.HasErrors() {
		res.Action = dto.ImportActionInvalid
		res.Errors = verr.Messages()
		return res, nil
	}

	existing, err := uc.repo.GetBySKU(ctx, row.sku)
	if err != nil {
		return res, err
	}

	var product *entity.Product
	switch {
	case existing == nil && mode == dto.ImportModeUpdate:
		res.Action = dto.ImportActionInvalid
		res.Errors = append(res.Errors, "sku: no existe")
		return res, nil
	case existing != nil && mode == dto.ImportModeCreate:
		res.Action = dto.ImportActionInvalid
		res.Errors = append(res.Errors, "sku: ya existe")
		return res, nil
	case existing == nil:
		res.Action = dto.ImportActionCreate
		product = newProductFromRow(row)
	default:
		product = mergeRow(existing, row)
		if sameValues(existing, product) {
			res.Action = dto.ImportActionSkip
			return res, nil
		}
		res.Action = dto.ImportActionUpdate
	}

	if !apply {
		return res, nil
	}
	if res.Action == dto.ImportActionCreate {
		err = uc.repo.Create(ctx, product)
	} else {
		res.Action, err = uc.applyUpdate(ctx, existing.ID, row)
	}
	if err != nil {
		res.Action = dto.ImportActionInvalid
		if errors.Is(err, domain.ErrDuplicate) {
			res.Errors = append(res.Errors, "sku: ya existe")
		} else {
			res.Errors = append(res.Errors, err.Error())
		}
	}
	return res, nil
}

// applyUpdate vuelve a leer el producto con la fila bloqueada y fusiona la fila sobre ese estado,
// de modo que un movimiento registrado después de la lectura del preview se conserva.
// El saldo solo se escribe si la celda quantity trae un valor distinto.
func (uc *CSVUseCase) applyUpdate(ctx context.Context, id string, row importRow) (string, error) {
	action := dto.ImportActionUpdate
	err := uc.txRunner.Run(ctx, func(products repository.ProductRepository, _ repository.MovementRepository) error {
		current, err := products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		merged := mergeRow(current, row)
		if sameValues(current, merged) {
			action = dto.ImportActionSkip
			return nil
		}
		if err := products.Update(ctx, merged); err != nil {
			return err
		}
		if merged.Quantity != current.Quantity {
			return products.UpdateQuantity(ctx, id, merged.Quantity)
		}
		return nil
	})
	return action, err
}

// Export escribe el encabezado y una fila por producto con los mismos filtros y orden del listado.
func (uc *CSVUseCase) Export(ctx context.Context, w io.Writer, q dto.ListQuery) error {
	filter, err := q.ToFilter(entity.OrderByName)
	if err != nil {
		return err
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("escribir CSV: %w", err)
	}
	for _, p := range list {
		rec := []string{
			p.SKU, p.Name, p.Category, p.Supplier,
			strconv.FormatInt(p.Quantity, 10),
			p.Cost.StringFixed(2),
			p.Price.StringFixed(2),
			strconv.FormatInt(p.MinStock, 10),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("escribir CSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, c := range Columns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError("header", "faltan columnas: "+strings.Join(missing, ","))
	}
	return cols, nil
}

// blankRecord detecta filas vacías exportadas por hojas de cálculo (";;;;;;;").
func blankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseRow(record []string, cols map[string]int) (importRow, *domain.ValidationError) {
	cell := func(name string) string {
		i := cols[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	verr := &domain.ValidationError{}
	row := importRow{sku: cell("sku"), name: cell("name")}
	if row.sku == "" {
		verr.Add("sku", "es requerido")
	} else if utf8.RuneCountInString(row.sku) > 100 {
		verr.Add("sku", "longitud máxima 100")
	}
	if row.name == "" {
		verr.Add("name", "es requerido")
	} else if utf8.RuneCountInString(row.name) > 200 {
		verr.Add("name", "longitud máxima 200")
	}
	if v := cell("category"); v != "" {
		row.category = &v
	}
	if v := cell("supplier"); v != "" {
		row.supplier = &v
	}
	row.quantity = parseCount(verr, "quantity", cell("quantity"))
	row.minStock = parseCount(verr, "min_stock", cell("min_stock"))
	row.cost = parseMoney(verr, "cost", cell("cost"))
	row.price = parseMoney(verr, "price", cell("price"))
	return row, verr
}

func parseCount(verr *domain.ValidationError, field, s string) *int64 {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		verr.Add(field, "debe ser un entero")
		return nil
	}
	if n < 0 {
		verr.Add(field, "debe ser mayor o igual a 0")
		return nil
	}
	return &n
}

func parseMoney(verr *domain.ValidationError, field, s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		verr.Add(field, "debe ser un número")
		return nil
	}
	if d.IsNegative() {
		verr.Add(field, "debe ser mayor o igual a 0")
		return nil
	}
	return &d
}

func newProductFromRow(row importRow) *entity.Product {
	now := time.Now().UTC()
	p := &entity.Product{
		ID:        entity.NewID(),
		SKU:       row.sku,
		Name:      row.name,
		Cost:      decimal.Zero,
		Price:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyRow(p, row)
	return p
}

func mergeRow(existing *entity.Product, row importRow) *entity.Product {
	p := *existing
	p.Name = row.name
	applyRow(&p, row)
	p.UpdatedAt = time.Now().UTC()
	return &p
}

func applyRow(p *entity.Product, row importRow) {
	if row.category != nil {
		p.Category = *row.category
	}
	if row.supplier != nil {
		p.Supplier = *row.supplier
	}
	if row.quantity != nil {
		p.Quantity = *row.quantity
	}
	if row.minStock != nil {
		p.MinStock = *row.minStock
	}
	if row.cost != nil {
		p.Cost = *row.cost
	}
	if row.price != nil {
		p.Price = *row.price
	}
}

func sameValues(a, b *entity.Product) bool {
	return a.Name == b.Name &&
		a.Category == b.Category &&
		a.Supplier == b.Supplier &&
		a.Quantity == b.Quantity &&
		a.MinStock == b.MinStock &&
		a.Cost.Equal(b.Cost) &&
		a.Price.Equal(b.Price)
}

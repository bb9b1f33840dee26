package analyzing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tealeg/xlsx/v2"

	"github.com/vfg2006/nola-insights/internal/domain"
)

// Formatos de exportação aceitos
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Export serializa a tabela no formato pedido com o nome determinístico do relatório
func Export(table *domain.PivotTable, req domain.PivotRequest, format string) (*domain.ExportFile, error) {
	var (
		data        []byte
		contentType string
		err         error
	)

	switch strings.ToLower(format) {
	case "", FormatCSV:
		format = FormatCSV
		contentType = contentTypeCSV
		data, err = WriteCSV(table)
	case FormatXLSX:
		contentType = contentTypeXLSX
		data, err = WriteXLSX(table)
	default:
		return nil, fmt.Errorf("%w: formato de exportação %q", domain.ErrInvalidInput, format)
	}
	if err != nil {
		return nil, err
	}

	return &domain.ExportFile{
		Name:        req.ExportName(format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// WriteCSV gera o CSV da tabela. Com dimensão de coluna, a primeira linha traz o nome da
// dimensão de coluna seguido dos rótulos e a segunda traz só o nome da dimensão de linha.
func WriteCSV(table *domain.PivotTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if table.HasColumnDimension() {
		header := append([]string{table.ColumnDimension}, table.ColumnLabels...)
		if err := w.Write(header); err != nil {
			return nil, errors.Wrap(err, "failed to write csv header")
		}
		index := make([]string, len(table.ColumnLabels)+1)
		index[0] = table.RowDimension
		if err := w.Write(index); err != nil {
			return nil, errors.Wrap(err, "failed to write csv header")
		}
	} else {
		header := append([]string{table.RowDimension}, table.ColumnLabels...)
		if err := w.Write(header); err != nil {
			return nil, errors.Wrap(err, "failed to write csv header")
		}
	}

	for i, label := range table.RowLabels {
		record := make([]string, 0, len(table.ColumnLabels)+1)
		record = append(record, label)
		for _, v := range table.Values[i] {
			record = append(record, strconv.FormatFloat(v, 'f', 2, 64))
		}
		if err := w.Write(record); err != nil {
			return nil, errors.Wrap(err, "failed to write csv row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to flush csv")
	}
	return buf.Bytes(), nil
}

// ParseCSV lê de volta um CSV gerado por WriteCSV
func ParseCSV(data []byte) (*domain.PivotTable, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}
	if len(records) == 0 || len(records[0]) < 2 {
		return nil, fmt.Errorf("%w: csv sem cabeçalho", domain.ErrInvalidInput)
	}

	header := records[0]
	table := &domain.PivotTable{
		ColumnLabels: append([]string(nil), header[1:]...),
	}

	body := records[1:]
	if len(body) > 0 && isIndexHeader(body[0]) {
		table.ColumnDimension = header[0]
		table.RowDimension = body[0][0]
		body = body[1:]
	} else {
		table.RowDimension = header[0]
		table.MetricLabel = header[1]
	}

	table.RowLabels = make([]string, 0, len(body))
	table.Values = make([][]float64, 0, len(body))
	for n, record := range body {
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: linha %d com %d colunas, esperado %d", domain.ErrInvalidInput, n+2, len(record), len(header))
		}
		values := make([]float64, len(record)-1)
		for j, cell := range record[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse value at row %d", n+2)
			}
			values[j] = v
		}
		table.RowLabels = append(table.RowLabels, record[0])
		table.Values = append(table.Values, values)
	}

	return table, nil
}

func isIndexHeader(record []string) bool {
	if len(record) < 2 || record[0] == "" {
		return false
	}
	for _, cell := range record[1:] {
		if cell != "" {
			return false
		}
	}
	return true
}

// WriteXLSX gera uma planilha com o mesmo layout do CSV
func WriteXLSX(table *domain.PivotTable) ([]byte, error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Relatorio")
	if err != nil {
		return nil, errors.Wrap(err, "failed to add sheet")
	}

	header := sheet.AddRow()
	if table.HasColumnDimension() {
		header.AddCell().SetString(table.ColumnDimension)
		for _, label := range table.ColumnLabels {
			header.AddCell().SetString(label)
		}
		sheet.AddRow().AddCell().SetString(table.RowDimension)
	} else {
		header.AddCell().SetString(table.RowDimension)
		for _, label := range table.ColumnLabels {
			header.AddCell().SetString(label)
		}
	}

	for i, label := range table.RowLabels {
		row := sheet.AddRow()
		row.AddCell().SetString(label)
		for _, v := range table.Values[i] {
			row.AddCell().SetFloatWithFormat(v, "0.00")
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx")
	}
	return buf.Bytes(), nil
}

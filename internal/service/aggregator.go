package service

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cns-tools/store-creator/internal/config"
	"github.com/cns-tools/store-creator/internal/utils"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CSV columns every upload must provide. Order in the file is free.
const (
	ColumnGroupID   = "group_id"
	ColumnStoreID   = "store_id"
	ColumnCountry   = "country"
	ColumnFrequency = "frequency"
	ColumnStartDate = "start_date"
)

const (
	startDateLayout   = "2/1/2006"
	requestDateLayout = "2006-01-02"

	// InvalidDate is sent in place of start dates that cannot be parsed in lenient mode.
	InvalidDate = "Invalid date"
)

var requiredColumns = []string{ColumnGroupID, ColumnStoreID, ColumnCountry, ColumnFrequency, ColumnStartDate}

var (
	// ErrInvalidCSV wraps every error caused by the uploaded file itself.
	ErrInvalidCSV = errors.New("invalid csv")
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
)

// RowValidationError collects every rejected cell of an upload.
type RowValidationError struct {
	Errors []config.RowError
}

func (e *RowValidationError) Error() string {
	return fmt.Sprintf("%d invalid csv value(s), first at line %d: %s %s",
		len(e.Errors), e.Errors[0].Line, e.Errors[0].Column, e.Errors[0].Reason)
}

func (e *RowValidationError) Unwrap() error { return ErrInvalidCSV }

// csvRecord is a row as read from the file, before coercion.
type csvRecord struct {
	GroupID   string `csv:"group_id" validate:"required,number"`
	StoreID   string `csv:"store_id" validate:"required,number"`
	Country   string `csv:"country" validate:"required,alpha"`
	Frequency string `csv:"frequency"`
	StartDate string `csv:"start_date" validate:"required,datetime=2/1/2006"`
}

var rowValidator = newRowValidator()

func newRowValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("csv")
	})
	return v
}

var validationReasons = map[string]string{
	"required": "is required",
	"number":   "must be a whole number",
	"alpha":    "must contain only letters",
	"datetime": "must be a date in DD/MM/YYYY format",
}

// CSVAggregator turns an uploaded CSV into one GroupRequest per group id.
type CSVAggregator struct {
	strict bool
}

// NewCSVAggregator creates an aggregator. In strict mode malformed ids and dates
// reject the whole upload; otherwise they are coerced and passed through.
func NewCSVAggregator(strict bool) *CSVAggregator {
	return &CSVAggregator{strict: strict}
}

// Build parses the CSV stream and groups its rows for the given environment.
func (a *CSVAggregator) Build(r io.Reader, env config.Environment) ([]config.GroupRequest, error) {
	rows, err := a.ReadRows(r, env)
	if err != nil {
		return nil, err
	}
	return Aggregate(rows, env), nil
}

// ReadRows parses the CSV stream into rows using the header to locate columns.
// An empty stream yields no rows. The country cell is only checked for
// production, the other environments never read it.
func (a *CSVAggregator) ReadRows(r io.Reader, env config.Environment) ([]config.Row, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []config.Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrInvalidCSV, err)
	}
	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	log := utils.WithComponent("csv_aggregator")
	rows := make([]config.Row, 0)
	rowErrors := make([]config.RowError, 0)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
		}
		line, _ := reader.FieldPos(0)

		raw := csvRecord{
			GroupID:   columns.value(record, ColumnGroupID),
			StoreID:   columns.value(record, ColumnStoreID),
			Country:   columns.value(record, ColumnCountry),
			Frequency: columns.value(record, ColumnFrequency),
			StartDate: columns.value(record, ColumnStartDate),
		}

		if a.strict {
			row, errs := strictRow(line, raw, env == config.EnvironmentProduction)
			if len(errs) > 0 {
				rowErrors = append(rowErrors, errs...)
				continue
			}
			rows = append(rows, row)
			continue
		}
		rows = append(rows, lenientRow(log, line, raw))
	}

	if len(rowErrors) > 0 {
		return nil, &RowValidationError{Errors: rowErrors}
	}
	return rows, nil
}

// Aggregate folds rows into groups keyed by group id, in first-seen order.
// Country, frequency and start date come from the first row of each group.
func Aggregate(rows []config.Row, env config.Environment) []config.GroupRequest {
	positions := make(map[int]int)
	groups := make([]config.GroupRequest, 0)

	for _, row := range rows {
		pos, ok := positions[row.GroupID]
		if !ok {
			groups = append(groups, config.GroupRequest{
				GroupID:   row.GroupID,
				Country:   env.CountryFor(row.Country),
				StoreIDs:  make([]int, 0, 1),
				Frequency: row.Frequency,
				StartDate: row.StartDate,
			})
			pos = len(groups) - 1
			positions[row.GroupID] = pos
		}
		if !slices.Contains(groups[pos].StoreIDs, row.StoreID) {
			groups[pos].StoreIDs = append(groups[pos].StoreIDs, row.StoreID)
		}
	}
	return groups
}

// NormalizeStartDate converts a DD/MM/YYYY date into YYYY-MM-DD.
func NormalizeStartDate(value string) (string, error) {
	parsed, err := time.Parse(startDateLayout, strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("parse start date '%s': %w", value, err)
	}
	return parsed.Format(requestDateLayout), nil
}

func skipBOM(r io.Reader) io.Reader {
	buffered := bufio.NewReader(r)
	if first, _, err := buffered.ReadRune(); err == nil && first != '\ufeff' {
		_ = buffered.UnreadRune()
	}
	return buffered
}

type columnIndex map[string]int

func indexColumns(header []string) (columnIndex, error) {
	columns := make(columnIndex, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	missing := make([]string, 0)
	for _, column := range requiredColumns {
		if _, ok := columns[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %w: %s", ErrInvalidCSV, ErrMissingColumn, strings.Join(missing, ", "))
	}
	return columns, nil
}

func (c columnIndex) value(record []string, column string) string {
	i := c[column]
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func strictRow(line int, raw csvRecord, checkCountry bool) (config.Row, []config.RowError) {
	if err := rowValidator.Struct(raw); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return config.Row{}, []config.RowError{{Line: line, Reason: err.Error()}}
		}
		errs := make([]config.RowError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			if !checkCountry && fe.Field() == ColumnCountry {
				continue
			}
			reason, ok := validationReasons[fe.Tag()]
			if !ok {
				reason = "failed " + fe.Tag() + " validation"
			}
			errs = append(errs, config.RowError{
				Line:   line,
				Column: fe.Field(),
				Value:  fmt.Sprint(fe.Value()),
				Reason: reason,
			})
		}
		if len(errs) > 0 {
			return config.Row{}, errs
		}
	}

	errs := make([]config.RowError, 0)
	groupID, err := strconv.Atoi(raw.GroupID)
	if err != nil {
		errs = append(errs, config.RowError{Line: line, Column: ColumnGroupID, Value: raw.GroupID, Reason: "is out of range"})
	}
	storeID, err := strconv.Atoi(raw.StoreID)
	if err != nil {
		errs = append(errs, config.RowError{Line: line, Column: ColumnStoreID, Value: raw.StoreID, Reason: "is out of range"})
	}
	if len(errs) > 0 {
		return config.Row{}, errs
	}

	// already validated by the datetime tag
	startDate, _ := NormalizeStartDate(raw.StartDate)

	return config.Row{
		Line:      line,
		GroupID:   groupID,
		StoreID:   storeID,
		Country:   raw.Country,
		Frequency: raw.Frequency,
		StartDate: startDate,
	}, nil
}

func lenientRow(log *zap.Logger, line int, raw csvRecord) config.Row {
	row := config.Row{
		Line:      line,
		Country:   raw.Country,
		Frequency: raw.Frequency,
	}

	var err error
	if row.GroupID, err = strconv.Atoi(raw.GroupID); err != nil {
		row.GroupID = 0
		log.Warn("Coercing unparseable id to 0",
			zap.Int(utils.FieldLine, line),
			zap.String(utils.FieldColumn, ColumnGroupID),
			zap.String("value", raw.GroupID))
	}
	if row.StoreID, err = strconv.Atoi(raw.StoreID); err != nil {
		row.StoreID = 0
		log.Warn("Coercing unparseable id to 0",
			zap.Int(utils.FieldLine, line),
			zap.String(utils.FieldColumn, ColumnStoreID),
			zap.String("value", raw.StoreID))
	}
	if row.StartDate, err = NormalizeStartDate(raw.StartDate); err != nil {
		log.Warn("Passing through unparseable start date",
			zap.Int(utils.FieldLine, line),
			zap.String(utils.FieldColumn, ColumnStartDate),
			zap.String("value", raw.StartDate))
		row.StartDate = InvalidDate
	}
	return row
}

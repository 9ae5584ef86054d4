// Package root contains the root command and the flag surface shared by
// the conversion commands.
package root

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/csv-ofx/internal/common"
	"fjacquet/csv-ofx/internal/config"
	"fjacquet/csv-ofx/internal/converter"
	"fjacquet/csv-ofx/internal/currencyutils"
	"fjacquet/csv-ofx/internal/fileutils"
	"fjacquet/csv-ofx/internal/models"
	"fjacquet/csv-ofx/internal/presets"
)

// ConvertFlags is the raw flag surface shared by convert and preview.
type ConvertFlags struct {
	Input  string
	Output string

	Preset           string
	Delimiter        string
	DecimalSeparator string

	DateColumn        int
	AmountColumn      int
	DescriptionCols   string
	DescriptionSep    string
	TypeColumn        int
	IDColumn          int
	Placeholder       string

	AccountID      string
	BankName       string
	Currency       string
	InitialBalance string
	InvertValues   bool

	PeriodStart string
	PeriodEnd   string
	OutOfRange  string
	Strict      bool
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration.
	Cfg *config.Config

	// SharedFlags holds the conversion flag values.
	SharedFlags = ConvertFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "csv-ofx",
		Short: "A CLI tool to convert CSV transaction exports to OFX 1.02 statements.",
		Long: `csv-ofx converts tabular transaction exports (CSV) into OFX 1.02 SGML
statements for import into accounting software. Column mappings, locale
conventions and statement options are supplied as flags or saved presets.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to csv-ofx!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			common.SetLogger(Log)
			fileutils.SetLogger(Log)
			presets.SetLogger(Log)
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input CSV file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")

	Cmd.PersistentFlags().StringVar(&SharedFlags.Preset, "preset", "", "Name of a saved mapping preset")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Delimiter, "delimiter", "", "CSV delimiter: ',', ';', 'tab' or '|'")
	Cmd.PersistentFlags().StringVar(&SharedFlags.DecimalSeparator, "decimal", "", "Decimal separator: '.' or ','")

	Cmd.PersistentFlags().IntVar(&SharedFlags.DateColumn, "date-col", -1, "Zero-based index of the date column")
	Cmd.PersistentFlags().IntVar(&SharedFlags.AmountColumn, "amount-col", -1, "Zero-based index of the amount column")
	Cmd.PersistentFlags().StringVar(&SharedFlags.DescriptionCols, "desc-cols", "", "Comma-separated indices of up to 4 description columns")
	Cmd.PersistentFlags().StringVar(&SharedFlags.DescriptionSep, "desc-sep", " ", "Separator joining description columns: space, '-', ',' or '|'")
	Cmd.PersistentFlags().IntVar(&SharedFlags.TypeColumn, "type-col", -1, "Index of the debit/credit column (-1 to infer from amount sign)")
	Cmd.PersistentFlags().IntVar(&SharedFlags.IDColumn, "id-col", -1, "Index of the transaction id column (-1 to generate deterministic ids)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Placeholder, "placeholder", models.DefaultPlaceholder, "Memo used when all description columns are empty")

	Cmd.PersistentFlags().StringVar(&SharedFlags.AccountID, "account", "", "Account identifier written to CCACCTFROM/ACCTID")
	Cmd.PersistentFlags().StringVar(&SharedFlags.BankName, "bank", "", "Bank/organization name for the sign-on block")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Currency, "currency", "", "ISO currency code written to CURDEF")
	Cmd.PersistentFlags().StringVar(&SharedFlags.InitialBalance, "balance", "0", "Initial (available) balance")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.InvertValues, "invert", false, "Negate amounts and swap debit/credit on every record")

	Cmd.PersistentFlags().StringVar(&SharedFlags.PeriodStart, "start", "", "Statement period start date")
	Cmd.PersistentFlags().StringVar(&SharedFlags.PeriodEnd, "end", "", "Statement period end date")
	Cmd.PersistentFlags().StringVar(&SharedFlags.OutOfRange, "out-of-range", "keep", "Policy for out-of-period transactions: keep, adjust or exclude")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.Strict, "strict", false, "Abort on the first row error instead of skipping the row")
}

// BuildOptions resolves flags, config defaults and an optional preset into
// converter options.
func BuildOptions() (converter.Options, error) {
	flags := SharedFlags

	if flags.Preset != "" {
		store := presets.NewStore(PresetsPath())
		preset, err := store.Get(flags.Preset)
		if err != nil {
			return converter.Options{}, err
		}
		if flags.Delimiter == "" {
			flags.Delimiter = preset.Delimiter
		}
		if flags.DecimalSeparator == "" {
			flags.DecimalSeparator = preset.DecimalSeparator
		}
		if flags.DateColumn < 0 {
			flags.DateColumn = preset.Mapping.Date
		}
		if flags.AmountColumn < 0 {
			flags.AmountColumn = preset.Mapping.Amount
		}
		if flags.DescriptionCols == "" {
			flags.DescriptionCols = joinInts(preset.Mapping.Description)
		}
		if preset.Mapping.Type != nil && flags.TypeColumn < 0 {
			flags.TypeColumn = *preset.Mapping.Type
		}
		if preset.Mapping.ID != nil && flags.IDColumn < 0 {
			flags.IDColumn = *preset.Mapping.ID
		}
		if preset.Mapping.Separator != "" && flags.DescriptionSep == " " {
			flags.DescriptionSep = preset.Mapping.Separator
		}
	}

	if flags.Delimiter == "" {
		flags.Delimiter = Cfg.CSV.Delimiter
	}
	if flags.DecimalSeparator == "" {
		flags.DecimalSeparator = Cfg.CSV.DecimalSeparator
	}
	if flags.Currency == "" {
		flags.Currency = Cfg.OFX.Currency
	}
	if flags.BankName == "" {
		flags.BankName = Cfg.OFX.BankName
	}

	delimiter, err := parseDelimiter(flags.Delimiter)
	if err != nil {
		return converter.Options{}, err
	}

	if flags.DecimalSeparator != "." && flags.DecimalSeparator != "," {
		return converter.Options{}, fmt.Errorf("decimal separator must be '.' or ',', got: %s", flags.DecimalSeparator)
	}

	descCols, err := parseIntList(flags.DescriptionCols)
	if err != nil {
		return converter.Options{}, fmt.Errorf("invalid --desc-cols: %w", err)
	}

	balance, err := decimal.NewFromString(flags.InitialBalance)
	if err != nil {
		return converter.Options{}, fmt.Errorf("invalid --balance: %w", err)
	}

	mapping := models.FieldMapping{
		Date:        flags.DateColumn,
		Amount:      flags.AmountColumn,
		Description: descCols,
		Separator:   flags.DescriptionSep,
		Placeholder: flags.Placeholder,
	}
	if flags.TypeColumn >= 0 {
		col := flags.TypeColumn
		mapping.Type = &col
	}
	if flags.IDColumn >= 0 {
		col := flags.IDColumn
		mapping.ID = &col
	}

	opts := converter.Options{
		Delimiter:        delimiter,
		DecimalSeparator: currencyutils.DecimalSeparator([]rune(flags.DecimalSeparator)[0]),
		Mapping:          mapping,
		AccountID:        flags.AccountID,
		BankName:         flags.BankName,
		Currency:         flags.Currency,
		InitialBalance:   balance,
		InvertValues:     flags.InvertValues,
		OutOfRange:       converter.OutOfRangePolicy(flags.OutOfRange),
		Strict:           flags.Strict,
	}

	if flags.PeriodStart != "" || flags.PeriodEnd != "" {
		period, err := models.NewStatementPeriod(flags.PeriodStart, flags.PeriodEnd)
		if err != nil {
			return converter.Options{}, err
		}
		opts.Period = &period
	}

	return opts, nil
}

// PresetsPath returns the configured preset store location.
func PresetsPath() string {
	if Cfg != nil && Cfg.Presets.Path != "" {
		return Cfg.Presets.Path
	}
	return "presets.yaml"
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case ",", ";", "|":
		return []rune(s)[0], nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ',', ';', 'tab' or '|')", s)
	}
}

func parseIntList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

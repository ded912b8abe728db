// seed_catalog genera un script SQL que carga categorías y artículos del catálogo
// a partir del CSV exportado por el proveedor (Windows-1252, separado por ';').
//
// Uso: go run ./cmd/seed_catalog articles.csv -o migrations/002_seed_catalog.sql
//
// Columnas reconocidas por cabecera (sin importar mayúsculas):
// reference, designation, prix_vente_ht (o prix), categorie (opcional).
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type article struct {
	Reference   string
	Designation string
	Price       decimal.Decimal
	Category    string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		output    string
		enc       string
		separator string
	)
	cmd := &cobra.Command{
		Use:   "seed_catalog <archivo.csv>",
		Short: "Genera el SQL de carga del catálogo desde el CSV del proveedor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoder, err := decoderFor(enc)
			if err != nil {
				return err
			}
			if len([]rune(separator)) != 1 {
				return fmt.Errorf("separador inválido %q", separator)
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("abrir CSV: %w", err)
			}
			defer f.Close()

			articles, err := readArticles(transform.NewReader(f, decoder.NewDecoder()), []rune(separator)[0])
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				w, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("crear salida: %w", err)
				}
				defer w.Close()
				out = w
			}
			if err := writeSQL(out, articles); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d artículos exportados\n", len(articles))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Archivo SQL de salida (stdout si se omite)")
	cmd.Flags().StringVar(&enc, "encoding", "windows-1252", "Codificación del CSV (windows-1252, iso-8859-1, utf-8)")
	cmd.Flags().StringVar(&separator, "sep", ";", "Separador de columnas")
	return cmd
}

func decoderFor(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	case "utf-8", "utf8":
		return unicode.UTF8, nil
	}
	return nil, fmt.Errorf("codificación no soportada: %s", name)
}

// readArticles lee el CSV ya decodificado. Las filas sin referencia se ignoran;
// una referencia repetida conserva la última fila.
func readArticles(r io.Reader, sep rune) ([]article, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	ref, okRef := cols["reference"]
	des, okDes := cols["designation"]
	price, okPrice := cols["prix_vente_ht"]
	if !okPrice {
		price, okPrice = cols["prix"]
	}
	if !okRef || !okDes || !okPrice {
		return nil, fmt.Errorf("cabecera incompleta: se esperan reference, designation y prix_vente_ht")
	}
	cat, okCat := cols["categorie"]

	byRef := map[string]article{}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(i int) string {
			if i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		a := article{Reference: get(ref), Designation: get(des)}
		if a.Reference == "" {
			continue
		}
		if a.Designation == "" {
			return nil, fmt.Errorf("línea %d: designación vacía para %s", line, a.Reference)
		}
		p, err := parsePrice(get(price))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio %q: %w", line, get(price), err)
		}
		a.Price = p
		if okCat {
			a.Category = get(cat)
		}
		byRef[a.Reference] = a
	}

	out := make([]article, 0, len(byRef))
	for _, a := range byRef {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out, nil
}

// parsePrice acepta "1 234,50" y "1234.50". Vacío es cero.
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("precio negativo")
	}
	return d.Round(2), nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func writeSQL(w io.Writer, articles []article) error {
	var b strings.Builder
	b.WriteString("-- Generado por cmd/seed_catalog. No editar a mano.\nBEGIN;\n\n")

	seen := map[string]bool{}
	var categories []string
	for _, a := range articles {
		if a.Category != "" && !seen[a.Category] {
			seen[a.Category] = true
			categories = append(categories, a.Category)
		}
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Fprintf(&b, "INSERT INTO categories (name) VALUES (%s) ON CONFLICT (name) DO NOTHING;\n", quote(c))
	}
	if len(categories) > 0 {
		b.WriteString("\n")
	}

	for _, a := range articles {
		category := "NULL"
		if a.Category != "" {
			category = fmt.Sprintf("(SELECT id FROM categories WHERE name = %s)", quote(a.Category))
		}
		fmt.Fprintf(&b,
			"INSERT INTO articles (reference, designation, sale_price_ht, category_id) VALUES (%s, %s, %s, %s)\n"+
				"    ON CONFLICT (reference) DO UPDATE SET designation = EXCLUDED.designation, sale_price_ht = EXCLUDED.sale_price_ht, category_id = EXCLUDED.category_id;\n",
			quote(a.Reference), quote(a.Designation), a.Price.StringFixed(2), category)
	}
	b.WriteString("\nCOMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadArticles(t *testing.T) {
	csv := "Reference;Designation;Prix_Vente_HT;Categorie\n" +
		"FH-01;Filtre à huile;80,00;Entretien\n" +
		";ligne vide;0;\n" +
		"HM-5W30;Huile moteur 5W30;1 120,5;Entretien\n" +
		"FH-01;Filtre à huile premium;95.5;Entretien\n"

	got, err := readArticles(strings.NewReader(csv), ';')
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "FH-01", got[0].Reference)
	assert.Equal(t, "Filtre à huile premium", got[0].Designation)
	assert.Equal(t, "95.50", got[0].Price.StringFixed(2))
	assert.Equal(t, "1120.50", got[1].Price.StringFixed(2))
	assert.Equal(t, "Entretien", got[1].Category)
}

func TestReadArticles_Errores(t *testing.T) {
	_, err := readArticles(strings.NewReader("reference;prix\nA;1\n"), ';')
	assert.Error(t, err)

	_, err = readArticles(strings.NewReader("reference;designation;prix\nA;x;abc\n"), ';')
	assert.ErrorContains(t, err, "línea 2")

	_, err = readArticles(strings.NewReader("reference;designation;prix\nA;x;-3\n"), ';')
	assert.Error(t, err)
}

func TestWriteSQL_Escapa(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, []article{
		{Reference: "PL-1", Designation: "Plaquettes d'usure", Category: "Freinage"},
	}))
	sql := buf.String()
	assert.Contains(t, sql, "'Plaquettes d''usure'")
	assert.Contains(t, sql, "INSERT INTO categories (name) VALUES ('Freinage') ON CONFLICT (name) DO NOTHING;")
	assert.Contains(t, sql, "0.00, (SELECT id FROM categories WHERE name = 'Freinage'))")
	assert.True(t, strings.HasSuffix(sql, "COMMIT;\n"))
}

func TestComando_DecodificaWindows1252(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "articles.csv")
	raw, err := charmap.Windows1252.NewEncoder().String("reference;designation;prix\nBG-4;Bougie d'allumage é;45\n")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(in, []byte(raw), 0o600))

	out := filepath.Join(dir, "seed.sql")
	cmd := rootCmd()
	cmd.SetArgs([]string{in, "-o", out})
	cmd.SetErr(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	sql, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(sql), "'Bougie d''allumage é'")
	assert.Contains(t, string(sql), "45.00, NULL)")
}

func TestComando_CodificacionDesconocida(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{"x.csv", "--encoding", "ebcdic"})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

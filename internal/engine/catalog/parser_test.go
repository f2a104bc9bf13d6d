package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/engine/catalog"
)

func TestParse(t *testing.T) {
	lines, err := catalog.Parse([]byte("1|conf/net.properties\n\n6|lib/libm.so\n5|bin/tool|with|bars\n"))
	require.NoError(t, err)

	assert.Equal(t, []catalog.Line{
		{Type: domain.TypeConfig, Path: "conf/net.properties"},
		{Type: domain.TypeNativeLib, Path: "lib/libm.so"},
		{Type: domain.TypeNativeCmd, Path: "bin/tool|with|bars"},
	}, lines)
}

func TestParse_Empty(t *testing.T) {
	lines, err := catalog.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = catalog.Parse([]byte("\n\n"))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestParse_Corrupt(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not a number", "notanumber|bin/foo"},
		{"top type", "7|release"},
		{"primary type", "0|java/lang/Object.class"},
		{"negative ordinal", "-1|bin/foo"},
		{"unknown ordinal", "42|bin/foo"},
		{"missing separator", "6"},
		{"empty path", "6|"},
		{"bad line after good ones", "1|conf/a\n6|lib/b\nx|c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.input))
			require.ErrorIs(t, err, domain.ErrCorruptCatalog)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	want := []catalog.Line{
		{Type: domain.TypeConfig, Path: "conf/a"},
		{Type: domain.TypeHeaderFile, Path: "include/b.h"},
		{Type: domain.TypeLegalNotice, Path: "legal/c"},
		{Type: domain.TypeManPage, Path: "man/d.1"},
		{Type: domain.TypeNativeCmd, Path: "bin/e"},
		{Type: domain.TypeNativeLib, Path: "lib/f.so"},
	}

	acc := catalog.NewAccumulator()
	for _, l := range want {
		acc.Add("m", l)
	}
	emitted, err := catalog.Emit(acc)
	require.NoError(t, err)
	require.Len(t, emitted, 1)

	got, err := catalog.Parse(readContent(t, emitted[0].Content))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

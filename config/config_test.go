package config

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/protodoc/format"
	"github.com/signadot/protodoc/loader"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "")
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Roots:      []string{"."},
		Extensions: loader.DefaultExtensions,
		HTTP:       HTTPConfig{Retries: 3, Timeout: 30 * time.Second},
		CacheSize:  128,
		Format:     "json",
	}
	if d := cmp.Diff(want, cfg); d != "" {
		t.Errorf("(-want +got)\n%s", d)
	}
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
roots: [docs, shared]
http:
  base_url: https://example.com/docs
  timeout: 5s
s3:
  bucket: configs
  region: us-east-1
cache_size: 0
typed_scalars: true
reorder: true
format: yaml
`
	if err := afero.WriteFile(fs, "/etc/pdoc.yaml", []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PDOC_HTTP_RETRIES", "7")
	cfg, err := Load(fs, "/etc/pdoc.yaml")
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Roots:        []string{"docs", "shared"},
		Extensions:   loader.DefaultExtensions,
		HTTP:         HTTPConfig{BaseURL: "https://example.com/docs", Retries: 7, Timeout: 5 * time.Second},
		S3:           S3Config{Bucket: "configs", Region: "us-east-1"},
		TypedScalars: true,
		Reorder:      true,
		Format:       "yaml",
	}
	if d := cmp.Diff(want, cfg); d != "" {
		t.Errorf("(-want +got)\n%s", d)
	}
	if cfg.OutputFormat() != format.YAMLFormat {
		t.Errorf("got format %s", cfg.OutputFormat())
	}
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := Load(fs, "/missing.yaml"); err == nil {
		t.Errorf("expected an error for a missing explicit file")
	}
	afero.WriteFile(fs, "/bad.yaml", []byte("format: toml\n"), 0644)
	if _, err := Load(fs, "/bad.yaml"); err == nil {
		t.Errorf("expected an error for a bad format")
	}
	afero.WriteFile(fs, "/neg.yaml", []byte("cache_size: -1\n"), 0644)
	if _, err := Load(fs, "/neg.yaml"); err == nil {
		t.Errorf("expected an error for a negative cache size")
	}
}

func TestConfigLoader(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/docs/base.yaml", []byte("a: 1\nwhen: \"2024-03-04\"\n"), 0644)
	cfg := &Config{
		Roots:        []string{"/docs"},
		Extensions:   loader.DefaultExtensions,
		CacheSize:    4,
		TypedScalars: true,
		Format:       "json",
	}
	l, err := cfg.Loader(context.Background(), fs, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := l.(*loader.Cache); !ok {
		t.Errorf("got %T want a cache", l)
	}
	doc, err := l.Load("base")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Fields) != 2 || doc.Values[1].Type.String() != "Date" {
		t.Errorf("unexpected document %v", doc.Fields)
	}
	cfg.CacheSize = 0
	l, err = cfg.Loader(context.Background(), fs, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := l.(loader.Chain); !ok {
		t.Errorf("got %T want a chain", l)
	}
}

package qdrant

import "testing"

func TestResolveConfigFromEnvValid(t *testing.T) {
	t.Setenv("QDRANT_URL", "http://qdrant:6333")
	t.Setenv("QDRANT_SKILLS_COLLECTION", "skills_ar")
	t.Setenv("QDRANT_NAMESPACE_PREFIX", "aic")
	t.Setenv("QDRANT_VECTOR_DIM", "3072")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.URL != "http://qdrant:6333" {
		t.Fatalf("URL: want=%q got=%q", "http://qdrant:6333", cfg.URL)
	}
	if cfg.Collection != "skills_ar" {
		t.Fatalf("Collection: want=%q got=%q", "skills_ar", cfg.Collection)
	}
	if cfg.NamespacePrefix != "aic" {
		t.Fatalf("NamespacePrefix: want=%q got=%q", "aic", cfg.NamespacePrefix)
	}
	if cfg.VectorDim != 3072 {
		t.Fatalf("VectorDim: want=%d got=%d", 3072, cfg.VectorDim)
	}
}

func TestResolveConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("QDRANT_URL", "http://qdrant:6333")
	t.Setenv("QDRANT_VECTOR_DIM", "")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.Collection != DefaultCollection {
		t.Fatalf("Collection: want=%q got=%q", DefaultCollection, cfg.Collection)
	}
	if cfg.VectorDim != DefaultVectorDim {
		t.Fatalf("VectorDim: want=%d got=%d", DefaultVectorDim, cfg.VectorDim)
	}
}

func TestResolveConfigFromEnvErrors(t *testing.T) {
	cases := []struct {
		name       string
		url        string
		collection string
		dim        string
		want       ConfigErrorCode
	}{
		{"missing url", "", "skills_en", "3", ConfigErrorMissingURL},
		{"invalid url", "qdrant:6333", "skills_en", "3", ConfigErrorInvalidURL},
		{"blank collection", "http://qdrant:6333", "  ", "3", ConfigErrorMissingCollection},
		{"non numeric dim", "http://qdrant:6333", "skills_en", "abc", ConfigErrorInvalidVectorDim},
		{"zero dim", "http://qdrant:6333", "skills_en", "0", ConfigErrorInvalidVectorDim},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("QDRANT_URL", tc.url)
			t.Setenv("QDRANT_SKILLS_COLLECTION", tc.collection)
			t.Setenv("QDRANT_VECTOR_DIM", tc.dim)

			_, err := ResolveConfigFromEnv()
			cfgErr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("expected *ConfigError, got=%T (%v)", err, err)
			}
			if cfgErr.Code != tc.want {
				t.Fatalf("code: want=%q got=%q", tc.want, cfgErr.Code)
			}
		})
	}
}

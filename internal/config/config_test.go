package config

import (
	"testing"
)

var configEnvVars = []string{
	"NOTES_PATH", "ANSWER_NOTES_PATH", "QDRANT_URL", "QDRANT_COLLECTION",
	"QDRANT_VECTOR_SIZE", "EMBEDDING_BASE_URL", "EMBEDDING_MODEL",
	"LLM_BASE_URL", "LLM_MODEL", "LLM_API_KEY", "API_KEY", "API_PORT",
	"DB_PATH", "CHUNK_MAX_SIZE", "CHUNK_WINDOW_SIZE", "CHUNK_WINDOW_OVERLAP",
	"LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	// Empty values are treated as unset by Load.
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		setupEnv func(t *testing.T)
		wantErr  bool
		check    func(*Config) bool
	}{
		{
			name: "defaults with required vector size",
			setupEnv: func(t *testing.T) {
				t.Setenv("DB_PATH", t.TempDir()+"/notes-rag.db")
				t.Setenv("QDRANT_VECTOR_SIZE", "1024")
			},
			check: func(cfg *Config) bool {
				return cfg.QdrantVectorSize == 1024 &&
					cfg.QdrantCollection == "notes" &&
					cfg.APIPort == "8000" &&
					cfg.ChunkMaxSize == 1500 &&
					cfg.ChunkWindowSize == 500 &&
					cfg.ChunkWindowOverlap == 50 &&
					cfg.AnswerNotesPath == cfg.NotesPath
			},
		},
		{
			name: "missing vector size",
			setupEnv: func(t *testing.T) {
				t.Setenv("DB_PATH", t.TempDir()+"/notes-rag.db")
			},
			wantErr: true,
		},
		{
			name: "invalid vector size",
			setupEnv: func(t *testing.T) {
				t.Setenv("DB_PATH", t.TempDir()+"/notes-rag.db")
				t.Setenv("QDRANT_VECTOR_SIZE", "not-a-number")
			},
			wantErr: true,
		},
		{
			name: "overlap at least window size",
			setupEnv: func(t *testing.T) {
				t.Setenv("DB_PATH", t.TempDir()+"/notes-rag.db")
				t.Setenv("QDRANT_VECTOR_SIZE", "1024")
				t.Setenv("CHUNK_WINDOW_SIZE", "100")
				t.Setenv("CHUNK_WINDOW_OVERLAP", "100")
			},
			wantErr: true,
		},
		{
			name: "distinct answer root",
			setupEnv: func(t *testing.T) {
				t.Setenv("DB_PATH", t.TempDir()+"/notes-rag.db")
				t.Setenv("QDRANT_VECTOR_SIZE", "768")
				t.Setenv("NOTES_PATH", "/srv/notes")
				t.Setenv("ANSWER_NOTES_PATH", "/home/me/notes")
			},
			check: func(cfg *Config) bool {
				return cfg.NotesPath == "/srv/notes" &&
					cfg.AnswerNotesPath == "/home/me/notes"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Error("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

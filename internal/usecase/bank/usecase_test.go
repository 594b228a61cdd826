package bank

import (
	"context"
	"errors"
	"testing"

	domain "tamweel-backend/internal/domain/bank"
	"tamweel-backend/internal/engine"
	"tamweel-backend/internal/testutil/repomock"
)

const userID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

func TestUsecase_Create(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateInput
		repo    *repomock.Banks
		wantErr error
		check   func(t *testing.T, dto *BankDTO)
	}{
		{
			name:  "happy path",
			input: CreateInput{Name: "Alinma Bank"},
			repo: &repomock.Banks{
				CreateFn: func(ctx context.Context, b *domain.Bank) error {
					if b.UserID != userID {
						t.Fatalf("bank not scoped to user: %s", b.UserID)
					}
					if len(b.BankID) != 32 {
						t.Fatalf("expected generated 32-hex id, got %q", b.BankID)
					}
					if !b.Active {
						t.Fatalf("new bank must start active")
					}
					return nil
				},
			},
			check: func(t *testing.T, dto *BankDTO) {
				if dto.Name != "Alinma Bank" || !dto.Active {
					t.Fatalf("dto mismatch: %+v", dto)
				}
			},
		},
		{
			name:    "blank name rejected",
			input:   CreateInput{Name: "   "},
			repo:    &repomock.Banks{},
			wantErr: engine.ErrValidation,
		},
		{
			name:  "repo error surfaces",
			input: CreateInput{Name: "Riyad Bank"},
			repo: &repomock.Banks{
				CreateFn: func(context.Context, *domain.Bank) error { return errors.New("insert failed") },
			},
			wantErr: errors.New("insert failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUsecase(tt.repo)
			dto, err := uc.Create(context.Background(), userID, tt.input)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("want error %v, got nil", tt.wantErr)
				}
				if errors.Is(tt.wantErr, engine.ErrValidation) && !errors.Is(err, engine.ErrValidation) {
					t.Fatalf("want validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tt.check != nil {
				tt.check(t, dto)
			}
		})
	}
}

func TestUsecase_List(t *testing.T) {
	repo := &repomock.Banks{
		ListByUserFn: func(ctx context.Context, gotUser string) ([]domain.Bank, error) {
			if gotUser != userID {
				t.Fatalf("list not scoped to user: %s", gotUser)
			}
			return []domain.Bank{
				{BankID: "a1", Name: "Alpha", Active: true},
				{BankID: "b2", Name: "Beta", Active: false},
			}, nil
		},
	}
	uc := NewUsecase(repo)

	got, err := uc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 banks, got %d", len(got))
	}
	if got[0].BankID != "a1" || got[1].Active {
		t.Fatalf("rows mapped wrong: %+v", got)
	}
}

func TestUsecase_Deactivate(t *testing.T) {
	t.Run("active bank is flipped and saved", func(t *testing.T) {
		saved := false
		repo := &repomock.Banks{
			GetByBankIDFn: func(ctx context.Context, gotUser, bankID string) (*domain.Bank, error) {
				return &domain.Bank{BankID: bankID, UserID: gotUser, Name: "Alpha", Active: true}, nil
			},
			SaveFn: func(ctx context.Context, b *domain.Bank) error {
				saved = true
				if b.Active {
					t.Fatalf("save should carry active=false")
				}
				return nil
			},
		}
		dto, err := NewUsecase(repo).Deactivate(context.Background(), userID, "bk-1")
		if err != nil {
			t.Fatalf("Deactivate: %v", err)
		}
		if !saved {
			t.Fatalf("expected a save")
		}
		if dto.Active {
			t.Fatalf("dto should be inactive")
		}
	})

	t.Run("already inactive is a no-op", func(t *testing.T) {
		repo := &repomock.Banks{
			GetByBankIDFn: func(ctx context.Context, gotUser, bankID string) (*domain.Bank, error) {
				return &domain.Bank{BankID: bankID, Name: "Alpha", Active: false}, nil
			},
			SaveFn: func(context.Context, *domain.Bank) error {
				t.Fatalf("no save expected for an inactive bank")
				return nil
			},
		}
		dto, err := NewUsecase(repo).Deactivate(context.Background(), userID, "bk-1")
		if err != nil {
			t.Fatalf("Deactivate: %v", err)
		}
		if dto.Active {
			t.Fatalf("dto should stay inactive")
		}
	})

	t.Run("unknown bank", func(t *testing.T) {
		repo := &repomock.Banks{
			GetByBankIDFn: func(context.Context, string, string) (*domain.Bank, error) {
				return nil, domain.ErrNotFound
			},
		}
		if _, err := NewUsecase(repo).Deactivate(context.Background(), userID, "missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

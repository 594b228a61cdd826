package bank

import (
	"context"
	"fmt"
	"strings"

	domain "tamweel-backend/internal/domain/bank"
	"tamweel-backend/internal/engine"
	"tamweel-backend/pkg/id"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) Create(ctx context.Context, userID string, in CreateInput) (*BankDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: bank name is required", engine.ErrValidation)
	}

	b := &domain.Bank{
		BankID: id.NewID32(),
		UserID: userID,
		Name:   name,
		Active: true,
	}
	if err := u.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toDTO(b), nil
}

func (u *Usecase) List(ctx context.Context, userID string) ([]BankDTO, error) {
	banks, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]BankDTO, 0, len(banks))
	for i := range banks {
		out = append(out, *toDTO(&banks[i]))
	}
	return out, nil
}

// Deactivate clears the active flag. Repeating the call on an already
// inactive bank returns the same result without another write.
func (u *Usecase) Deactivate(ctx context.Context, userID, bankID string) (*BankDTO, error) {
	b, err := u.repo.GetByBankID(ctx, userID, bankID)
	if err != nil {
		return nil, err
	}
	if b.Active {
		b.Active = false
		if err := u.repo.Save(ctx, b); err != nil {
			return nil, err
		}
	}
	return toDTO(b), nil
}

func toDTO(b *domain.Bank) *BankDTO {
	return &BankDTO{BankID: b.BankID, Name: b.Name, Active: b.Active, CreatedAt: b.CreatedAt}
}

package catalog

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/barber-slots/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-slots/internal/models"
	"github.com/BruksfildServices01/barber-slots/internal/validators"
)

type ProfileInput struct {
	Name          string
	Email         string
	Phone         string
	Address       string
	PostalCode    string
	Region        string
	Instagram     string
	Facebook      string
	Website       string
	PortfolioLink string
}

type Profile struct {
	repo        domain.Repository
	phoneRegion string
	checkDomain bool
}

// NewProfile builds the profile use case. checkDomain adds a DNS lookup
// of the email domain on save.
func NewProfile(repo domain.Repository, phoneRegion string, checkDomain bool) *Profile {
	return &Profile{repo: repo, phoneRegion: phoneRegion, checkDomain: checkDomain}
}

func (uc *Profile) Get(ctx context.Context, barberID string) (*models.Barber, error) {
	return uc.repo.GetBarber(ctx, barberID)
}

func (uc *Profile) Save(ctx context.Context, barberID string, in ProfileInput) (*models.Barber, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !validators.IsEmailSyntaxValid(email) {
		return nil, domain.ErrInvalidEmail
	}
	if uc.checkDomain && !validators.IsEmailDomainValid(ctx, email) {
		return nil, domain.ErrInvalidEmail
	}

	phone := in.Phone
	if phone != "" {
		p, ok := validators.NormalizePhone(phone, uc.phoneRegion)
		if !ok {
			return nil, domain.ErrInvalidPhone
		}
		phone = p
	}

	b := &models.Barber{
		ID:            barberID,
		Name:          name,
		Email:         email,
		Phone:         phone,
		Address:       strings.TrimSpace(in.Address),
		PostalCode:    strings.TrimSpace(in.PostalCode),
		Region:        strings.TrimSpace(in.Region),
		Instagram:     in.Instagram,
		Facebook:      in.Facebook,
		Website:       in.Website,
		PortfolioLink: in.PortfolioLink,
	}
	if err := uc.repo.UpsertBarber(ctx, b); err != nil {
		return nil, err
	}
	return uc.repo.GetBarber(ctx, barberID)
}

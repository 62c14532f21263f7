package application

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/contasclaras/api/internal/domain/entity"
	repo "github.com/contasclaras/api/internal/domain/repository"
)

var (
	ErrDepositorNotFound = errors.New("depositor not found")
	ErrDepositorName     = errors.New("depositor name must be at least 3 characters")
)

// DepositorService owns counterparty CRUD. Deletion is allowed even when
// bills still reference the depositor: each bill keeps the name snapshot
// taken at creation and the foreign key is nulled by the store.
type DepositorService struct {
	Repo   repo.DepositorRepository
	Logger *logrus.Logger
}

func NewDepositorService(depRepo repo.DepositorRepository, logger *logrus.Logger) *DepositorService {
	return &DepositorService{Repo: depRepo, Logger: logger}
}

// DepositorInput carries all editable depositor fields. Address fields are
// independently optional.
type DepositorInput struct {
	DisplayName  string
	CEP          string
	Street       string
	Number       string
	Neighborhood string
	City         string
	State        string
	CPF          string
	CNPJ         string
}

func (in DepositorInput) validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(in.DisplayName)) < 3 {
		return ErrDepositorName
	}
	return nil
}

func (s *DepositorService) Create(ctx context.Context, userID string, in DepositorInput) (*entity.Depositor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	d := &entity.Depositor{
		UserID:       userID,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		CEP:          in.CEP,
		Street:       in.Street,
		Number:       in.Number,
		Neighborhood: in.Neighborhood,
		City:         in.City,
		State:        in.State,
		CPF:          in.CPF,
		CNPJ:         in.CNPJ,
	}
	if err := s.Repo.Create(ctx, d); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("depositor create failed")
		return nil, err
	}
	return d, nil
}

func (s *DepositorService) List(ctx context.Context, userID string) ([]entity.Depositor, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *DepositorService) Get(ctx context.Context, userID, id string) (*entity.Depositor, error) {
	d, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrDepositorNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *DepositorService) Update(ctx context.Context, userID, id string, in DepositorInput) (*entity.Depositor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	d, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrDepositorNotFound
		}
		return nil, err
	}
	d.DisplayName = strings.TrimSpace(in.DisplayName)
	d.CEP = in.CEP
	d.Street = in.Street
	d.Number = in.Number
	d.Neighborhood = in.Neighborhood
	d.City = in.City
	d.State = in.State
	d.CPF = in.CPF
	d.CNPJ = in.CNPJ
	if err := s.Repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DepositorService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrDepositorNotFound
		}
		s.Logger.WithError(err).WithField("depositor_id", id).Error("depositor delete failed")
		return err
	}
	return nil
}

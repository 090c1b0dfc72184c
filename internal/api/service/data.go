package service

import (
	"context"
	"errors"

	"github.com/NimrodLoozar/OwnProject/internal/api/domain"
	"github.com/NimrodLoozar/OwnProject/internal/api/store"
)

var ErrDataKeyExists = errors.New("data_key_exists")

// DataService is the simple per-user key/value surface. It carries no
// authorization logic of its own: callers pass the already-resolved user id
// from the access guard.
type DataService struct {
	Store store.Store
}

func (s *DataService) List(ctx context.Context, userID int64) ([]domain.UserData, error) {
	return s.Store.UserData().ListByUser(ctx, userID)
}

func (s *DataService) Get(ctx context.Context, userID int64, key string) (domain.UserData, error) {
	return s.Store.UserData().GetByKey(ctx, userID, key)
}

func (s *DataService) Create(ctx context.Context, userID int64, key string, value *string) (domain.UserData, error) {
	d, err := s.Store.UserData().Create(ctx, domain.UserData{
		UserID: userID,
		Key:    key,
		Value:  value,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.UserData{}, ErrDataKeyExists
		}
		return domain.UserData{}, err
	}
	return d, nil
}

// Update is an upsert: a missing key is created rather than rejected, so PUT
// is always safe to call.
func (s *DataService) Update(ctx context.Context, userID int64, key string, value *string) (domain.UserData, error) {
	err := s.Store.UserData().UpdateValue(ctx, userID, key, value)
	if errors.Is(err, store.ErrNotFound) {
		d, err := s.Store.UserData().Create(ctx, domain.UserData{
			UserID: userID,
			Key:    key,
			Value:  value,
		})
		if !errors.Is(err, store.ErrAlreadyExists) {
			return d, err
		}
		// Lost a race with a concurrent create; fall through to update the
		// row that now exists.
		err = s.Store.UserData().UpdateValue(ctx, userID, key, value)
		if err != nil {
			return domain.UserData{}, err
		}
	} else if err != nil {
		return domain.UserData{}, err
	}
	return s.Store.UserData().GetByKey(ctx, userID, key)
}

func (s *DataService) Delete(ctx context.Context, userID int64, key string) error {
	return s.Store.UserData().DeleteByKey(ctx, userID, key)
}

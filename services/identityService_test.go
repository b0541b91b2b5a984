package services

import (
	"CarePulse/models"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveProfileIDAdminActsAsAccount(t *testing.T) {
	service := NewIdentityService(&doctorDirectoryMock{}, &patientDirectoryMock{})

	profileID, err := service.ResolveProfileID(context.Background(), 7, "Admin")
	assert.NoError(t, err)
	assert.Equal(t, "7", profileID)
}

func TestResolveProfileIDMapsAccountToDoctorProfile(t *testing.T) {
	service := NewIdentityService(&doctorDirectoryMock{
		GetByUserIDFunc: func(ctx context.Context, userID int64) (*models.Doctor, error) {
			assert.Equal(t, int64(42), userID)
			return &models.Doctor{ID: "doc-uuid", UserID: userID}, nil
		},
	}, &patientDirectoryMock{})

	profileID, err := service.ResolveProfileID(context.Background(), 42, "Doctor")
	assert.NoError(t, err)
	assert.Equal(t, "doc-uuid", profileID)
}

func TestResolveProfileIDMapsAccountToPatientProfile(t *testing.T) {
	service := NewIdentityService(&doctorDirectoryMock{}, &patientDirectoryMock{
		GetByUserIDFunc: func(ctx context.Context, userID int64) (*models.Patient, error) {
			return &models.Patient{ID: "pat-uuid", UserID: userID}, nil
		},
	})

	profileID, err := service.ResolveProfileID(context.Background(), 9, "Patient")
	assert.NoError(t, err)
	assert.Equal(t, "pat-uuid", profileID)
}

func TestResolveProfileIDUnlinkedAccount(t *testing.T) {
	service := NewIdentityService(&doctorDirectoryMock{}, &patientDirectoryMock{})

	profileID, err := service.ResolveProfileID(context.Background(), 9, "Patient")
	assert.NoError(t, err)
	assert.Empty(t, profileID)
}

func TestResolveProfileIDPropagatesLookupError(t *testing.T) {
	service := NewIdentityService(&doctorDirectoryMock{
		GetByUserIDFunc: func(ctx context.Context, userID int64) (*models.Doctor, error) {
			return nil, errors.New("connection refused")
		},
	}, &patientDirectoryMock{})

	_, err := service.ResolveProfileID(context.Background(), 42, "Doctor")
	assert.Error(t, err)
}

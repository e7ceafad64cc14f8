// Package permissions drives the provider authorization surface through the
// static permission-name registry.
package permissions

import (
	"context"
	"fmt"
	"log/slog"

	shared "github.com/flomentum/health-bridge/pkg"
	"github.com/flomentum/health-bridge/pkg/domain/query"
)

type Service struct {
	provider shared.HealthProvider
	logger   *slog.Logger
}

func NewService(provider shared.HealthProvider, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   logger.With("component", "permissions"),
	}
}

// Check reports the provider authorization state per permission name.
// Permission names that resolve to no record types are left out of the
// result; for names covering several record types the last one wins.
func (s *Service) Check(permissions []string) map[string]string {
	result := make(map[string]string)
	for _, permission := range permissions {
		for _, recordType := range shared.PermissionRecordTypes[permission] {
			result[permission] = s.provider.AuthorizationStatus(recordType).String()
		}
	}
	return result
}

// Request asks the provider to prompt for read access to everything the
// given permissions cover. The provider cannot report which grants were
// actually made, so a successful prompt flow assumes all permissions were
// granted and a silently failed one assumes none were.
func (s *Service) Request(ctx context.Context, permissions []string) (map[string]bool, error) {
	var recordTypes []string
	var invalid []string
	for _, permission := range permissions {
		mapped := shared.PermissionRecordTypes[permission]
		if len(mapped) == 0 {
			invalid = append(invalid, permission)
			continue
		}
		recordTypes = append(recordTypes, mapped...)
	}

	if len(recordTypes) == 0 {
		return nil, query.NewValidationError("No valid permission types found. Invalid permissions: %v", invalid)
	}

	s.logger.Info("requesting permissions", "permissions", permissions, "record_types", len(recordTypes))

	granted, err := s.provider.RequestAuthorization(ctx, recordTypes)
	if err != nil {
		return nil, fmt.Errorf("Authorization failed: %w", err)
	}

	result := make(map[string]bool, len(permissions))
	for _, permission := range permissions {
		result[permission] = granted
	}
	return result, nil
}

package handlers

import (
	"emergency-response-service/internal/adapters/location"
	"emergency-response-service/internal/api/dto"
	"emergency-response-service/internal/services"
)

// reportedLocator returns a resolver for a device-reported fix, or nil when
// the request carried none. A malformed fix is an error, never a fallback to
// the configured provider.
func reportedLocator(o dto.LocationOverride) (*services.LocationResolver, error) {
	c, ok, err := o.Coordinate()
	if err != nil || !ok {
		return nil, err
	}
	return services.NewLocationResolver(location.Reported(c)), nil
}

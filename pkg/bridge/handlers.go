package bridge

import (
	"net/http"
	"time"

	"github.com/flomentum/health-bridge/pkg/domain/query"
	"github.com/flomentum/health-bridge/pkg/types"
)

func (s *Server) handleAvailable(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, types.AvailableResponse{Available: s.provider.IsAvailable()})
}

func (s *Server) handleCheckPermissions(w http.ResponseWriter, r *http.Request) {
	var req types.PermissionsRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if req.Permissions == nil {
		s.respondError(w, r, query.NewValidationError("Invalid permissions format"))
		return
	}
	s.respondJSON(w, http.StatusOK, types.CheckPermissionsResponse{Permissions: s.permissions.Check(req.Permissions)})
}

func (s *Server) handleRequestPermissions(w http.ResponseWriter, r *http.Request) {
	var req types.PermissionsRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if req.Permissions == nil {
		s.respondError(w, r, query.NewValidationError("Invalid permissions format"))
		return
	}
	granted, err := s.permissions.Request(r.Context(), req.Permissions)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, types.RequestPermissionsResponse{Permissions: granted})
}

func (s *Server) handleLatestSample(w http.ResponseWriter, r *http.Request) {
	var req types.LatestSampleRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if req.DataType == "" {
		s.respondError(w, r, query.NewValidationError("Missing data type"))
		return
	}
	resp, err := s.samples.QueryLatest(r.Context(), req.DataType)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handleLatestFor builds the convenience endpoints that pin the data type
// and delegate to the generic latest-sample path.
func (s *Server) handleLatestFor(dataType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := s.samples.QueryLatest(r.Context(), dataType)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleAggregated(w http.ResponseWriter, r *http.Request) {
	var req types.AggregatedRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	start, err1 := time.Parse(time.RFC3339, req.StartDate)
	end, err2 := time.Parse(time.RFC3339, req.EndDate)
	if err1 != nil || err2 != nil || req.DataType == "" || req.Bucket == "" {
		s.respondError(w, r, query.NewValidationError("Invalid parameters"))
		return
	}
	resp, err := s.aggregates.QueryAggregated(r.Context(), start, end, req.DataType, req.Bucket)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSleep(w http.ResponseWriter, r *http.Request) {
	var req types.SleepRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if req.StartDate == "" || req.EndDate == "" {
		s.respondError(w, r, query.NewValidationError("Missing startDate or endDate"))
		return
	}
	start, err1 := time.Parse(time.RFC3339, req.StartDate)
	end, err2 := time.Parse(time.RFC3339, req.EndDate)
	if err1 != nil || err2 != nil {
		s.respondError(w, r, query.NewValidationError("Invalid date format. Expected ISO8601 strings."))
		return
	}
	resp, err := s.sleep.QuerySleep(r.Context(), start, end)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkouts(w http.ResponseWriter, r *http.Request) {
	var req types.WorkoutsRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	start, err1 := time.Parse(time.RFC3339, req.StartDate)
	end, err2 := time.Parse(time.RFC3339, req.EndDate)
	if err1 != nil || err2 != nil ||
		req.IncludeHeartRate == nil || req.IncludeRoute == nil || req.IncludeSteps == nil {
		s.respondError(w, r, query.NewValidationError("Invalid parameters"))
		return
	}
	resp, err := s.workouts.QueryWorkouts(r.Context(), start, end,
		*req.IncludeHeartRate, *req.IncludeRoute, *req.IncludeSteps)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

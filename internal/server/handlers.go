package server

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/internal/state"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
)

var errBadRequest = errors.New("bad request")

// projectionRequest is shared by the balance and trajectory endpoints.
// Omitted years and returnRate fall back to the configured defaults.
type projectionRequest struct {
	Profile    json.RawMessage  `json:"profile"`
	Years      *int             `json:"years"`
	ReturnRate *decimal.Decimal `json:"returnRate"`
}

type balanceResponse struct {
	Years      int             `json:"years"`
	ReturnRate decimal.Decimal `json:"returnRate"`
	Balance    decimal.Decimal `json:"balance"`
}

type trajectoryResponse struct {
	Years      int               `json:"years"`
	ReturnRate decimal.Decimal   `json:"returnRate"`
	Trajectory domain.Trajectory `json:"trajectory"`
	Warnings   []string          `json:"warnings,omitempty"`
}

type matrixRequest struct {
	Profile     json.RawMessage   `json:"profile"`
	YearOptions []int             `json:"yearOptions"`
	ReturnRates []decimal.Decimal `json:"returnRates"`
}

// resolveRequest asks for one field in one year, or with Through set, the
// effective values of years 1..Through.
type resolveRequest struct {
	Profile json.RawMessage        `json:"profile"`
	Year    int                    `json:"year"`
	Field   domain.AdjustmentField `json:"field"`
	Through int                    `json:"through"`
}

type resolveResponse struct {
	Year  int                    `json:"year"`
	Field domain.AdjustmentField `json:"field"`
	Value decimal.Decimal        `json:"value"`
}

type resolveScheduleResponse struct {
	Through  int                         `json:"through"`
	Schedule []calculation.EffectiveYear `json:"schedule"`
}

type goalRequest struct {
	Profile    json.RawMessage  `json:"profile"`
	Years      *int             `json:"years"`
	ReturnRate *decimal.Decimal `json:"returnRate"`
	Target     decimal.Decimal  `json:"target"`
	MaxRate    decimal.Decimal  `json:"maxRate"`
}

type shareRequest struct {
	Profile json.RawMessage `json:"profile"`
}

type shareResponse struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}

type profileResponse struct {
	Profile *domain.Profile `json:"profile"`
}

func decodeBody(ctx *fasthttp.RequestCtx, v interface{}) error {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) decodeProfile(raw json.RawMessage) (*domain.Profile, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: profile is required", errBadRequest)
	}
	p, err := s.parser.ParseProfileJSON(raw)
	if err != nil {
		return nil, err
	}
	if err := s.parser.ValidateProfile(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Server) horizon(years *int, rate *decimal.Decimal) (int, decimal.Decimal, error) {
	y := s.settings.Defaults.Years
	if years != nil {
		y = *years
	}
	if err := s.settings.CheckHorizon(y); err != nil {
		return 0, decimal.Zero, err
	}
	r := s.settings.DefaultReturnRate()
	if rate != nil {
		r = *rate
	}
	return y, r, nil
}

func (s *Server) handleBalance(ctx *fasthttp.RequestCtx) {
	var req projectionRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	p, err := s.decodeProfile(req.Profile)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	years, rate, err := s.horizon(req.Years, req.ReturnRate)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, balanceResponse{
		Years:      years,
		ReturnRate: rate,
		Balance:    s.engine.ProjectBalance(p, years, rate),
	})
}

func (s *Server) handleTrajectory(ctx *fasthttp.RequestCtx) {
	var req projectionRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	p, err := s.decodeProfile(req.Profile)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	years, rate, err := s.horizon(req.Years, req.ReturnRate)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, trajectoryResponse{
		Years:      years,
		ReturnRate: rate,
		Trajectory: s.engine.ProjectTrajectory(p, years, rate),
		Warnings:   s.parser.Warnings(p, &s.settings.Sliders),
	})
}

func (s *Server) handleMatrix(ctx *fasthttp.RequestCtx) {
	var req matrixRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	p, err := s.decodeProfile(req.Profile)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	if len(req.YearOptions) == 0 {
		req.YearOptions = s.settings.Projections.YearOptions
	}
	for _, y := range req.YearOptions {
		if err := s.settings.CheckHorizon(y); err != nil {
			writeError(ctx, statusFor(err), err.Error())
			return
		}
	}
	if len(req.ReturnRates) == 0 {
		req.ReturnRates = s.settings.ReturnRates()
	}
	m, err := s.engine.ProjectionMatrix(ctx, calculation.MatrixRequest{
		Profile:     p,
		YearOptions: req.YearOptions,
		ReturnRates: req.ReturnRates,
		Thresholds:  s.settings.Thresholds(),
	})
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	s.metrics.matrixCells.Add(float64(len(req.YearOptions) * len(req.ReturnRates)))
	writeJSON(ctx, fasthttp.StatusOK, m)
}

func (s *Server) handleResolve(ctx *fasthttp.RequestCtx) {
	var req resolveRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	p, err := s.decodeProfile(req.Profile)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	if req.Through != 0 {
		if err := s.settings.CheckHorizon(req.Through); err != nil {
			writeError(ctx, statusFor(err), err.Error())
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, resolveScheduleResponse{Through: req.Through, Schedule: s.engine.ResolveSchedule(p, req.Through)})
		return
	}
	v, err := s.engine.ResolveEffectiveValue(p, req.Year, req.Field)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resolveResponse{Year: req.Year, Field: req.Field, Value: v})
}

func (s *Server) handleGoal(ctx *fasthttp.RequestCtx) {
	var req goalRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	p, err := s.decodeProfile(req.Profile)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	years, rate, err := s.horizon(req.Years, req.ReturnRate)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	res, err := s.engine.CalculateBreakEvenSavingsRate(p, years, rate, req.Target, req.MaxRate)
	if errors.Is(err, calculation.ErrTargetUnreachable) {
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, res)
}

func (s *Server) handleShareEncode(ctx *fasthttp.RequestCtx) {
	var req shareRequest
	if err := decodeBody(ctx, &req); err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	p, err := s.decodeProfile(req.Profile)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	code, err := state.EncodeShareCode(p)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	link, err := state.ShareURL(s.settings.ShareBaseURL, p)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, shareResponse{Code: code, URL: link})
}

func (s *Server) handleShareDecode(ctx *fasthttp.RequestCtx) {
	code := string(ctx.QueryArgs().Peek(state.ShareParam))
	p, err := state.DecodeShareCode(code)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, profileResponse{Profile: p})
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

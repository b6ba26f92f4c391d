package ui

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"bootstrapstats/app"
	"bootstrapstats/domain/bootstrap"
	"bootstrapstats/domain/catalog"
	"bootstrapstats/internal/errors"
)

// indexView feeds index.html
type indexView struct {
	Title     string
	Exercises []catalog.Exercise
}

// exerciseView feeds exercise.html for both the empty form and the result
type exerciseView struct {
	Title     string
	Exercise  catalog.Exercise
	Data1     string
	Data2     string
	Seed      string
	BlockSize string
	Result    *bootstrap.AnalysisResult
	Error     *errors.AppError
}

// formInput is the subset of the exercise form both routers read
type formInput struct {
	Data1     string
	Data2     string
	Seed      string
	BlockSize string
}

// analysisBody is the JSON request of POST /api/analyses/:id
type analysisBody struct {
	Primary   []float64 `json:"primary"`
	Secondary []float64 `json:"secondary"`
	Seed      *int64    `json:"seed"`
	BlockSize int       `json:"block_size"`
}

// analysisResponse flattens the result and adds the display fields
type analysisResponse struct {
	*bootstrap.AnalysisResult
	Name   string            `json:"name"`
	Fields []bootstrap.Field `json:"fields"`
}

type errorResponse struct {
	Error *errors.AppError `json:"error"`
}

// pages holds the request handling shared by the gin server and the chi app
type pages struct {
	service *app.AnalysisService
}

func (p pages) index() indexView {
	return indexView{Title: "Bootstrap Exercises", Exercises: p.service.Exercises()}
}

func (p pages) exercise(idParam string) (exerciseView, *errors.AppError) {
	id, err := bootstrap.ParseAnalysisID(idParam)
	if err != nil {
		return exerciseView{}, errors.FromDomain(err)
	}
	ex, err := p.service.Exercise(id)
	if err != nil {
		return exerciseView{}, errors.FromDomain(err)
	}
	return exerciseView{Title: ex.Name, Exercise: ex}, nil
}

// submit runs the form and returns the page plus the status to send with it
func (p pages) submit(ctx context.Context, idParam string, form formInput) (exerciseView, int) {
	view, appErr := p.exercise(idParam)
	if appErr != nil {
		return exerciseView{Title: "Unknown exercise", Error: appErr}, errors.HTTPStatus(appErr.Code)
	}
	view.Data1, view.Data2 = form.Data1, form.Data2
	view.Seed, view.BlockSize = form.Seed, form.BlockSize

	req := app.TextRequest{Analysis: view.Exercise.ID, Data1: form.Data1}
	if view.Exercise.HasSecondInput() {
		req.Data2 = form.Data2
	}
	if seed, err := strconv.ParseInt(strings.TrimSpace(form.Seed), 10, 64); err == nil {
		req.Seed = &seed
	}
	if size, err := strconv.Atoi(strings.TrimSpace(form.BlockSize)); err == nil {
		req.BlockSize = size
	}

	res, err := p.service.RunText(ctx, req)
	if err != nil {
		view.Error = errors.FromDomain(err)
		return view, errors.HTTPStatus(view.Error.Code)
	}
	view.Result = res
	return view, 200
}

// analyze runs a JSON request and returns the status and body to encode
func (p pages) analyze(ctx context.Context, idParam string, raw []byte) (int, interface{}) {
	id, err := bootstrap.ParseAnalysisID(idParam)
	if err != nil {
		return fail(errors.FromDomain(err))
	}

	var body analysisBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return 400, errorResponse{Error: errors.InvalidInput("request body must be JSON: " + err.Error())}
	}

	res, err := p.service.Run(ctx, app.AnalysisRequest{
		Analysis:  id,
		Primary:   body.Primary,
		Secondary: body.Secondary,
		Seed:      body.Seed,
		BlockSize: body.BlockSize,
	})
	if err != nil {
		return fail(errors.FromDomain(err))
	}

	name := ""
	if ex, ok := catalog.Lookup(id); ok {
		name = ex.Name
	}
	return 200, analysisResponse{AnalysisResult: res, Name: name, Fields: res.Fields()}
}

func fail(appErr *errors.AppError) (int, interface{}) {
	return errors.HTTPStatus(appErr.Code), errorResponse{Error: appErr}
}

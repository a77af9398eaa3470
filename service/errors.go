package service

import (
	"errors"

	"github.com/Aashish23092/expense-insights/repository"
)

var (
	ErrNoData                 = errors.New("no data found")
	ErrInsufficientData       = errors.New("not enough data")
	ErrSummaryNotFound        = errors.New("Please generate a summary first.")
	ErrInvalidMonth           = errors.New("Invalid month name.")
	ErrInsufficientDebtBudget = errors.New("Insufficient debt budget.")
	ErrIncompleteRecord       = errors.New("invoice record is incomplete")
	ErrUnsupportedFile        = errors.New("unsupported file type")
	ErrUpstream               = errors.New("language model request failed")
	ErrClassifyInput          = errors.New(`Invalid input, expected "textBlocks" field in JSON.`)
	ErrEmployeeNotFound       = repository.ErrEmployeeNotFound
)

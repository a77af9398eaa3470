package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aashish23092/expense-insights/client/llm"
	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/repository"
)

const chatSystemPrompt = "You are a helpful personal finance assistant for employees. Answer only from the data provided."

type ChatService struct {
	employees repository.EmployeeRepository
	history   repository.InvoiceRepository
	llm       llm.LLMProvider
}

func NewChatService(employees repository.EmployeeRepository, history repository.InvoiceRepository, provider llm.LLMProvider) *ChatService {
	return &ChatService{employees: employees, history: history, llm: provider}
}

func (s *ChatService) Chat(ctx context.Context, req dto.ChatRequest) (dto.ChatResponse, error) {
	employeeID := req.ID()
	e, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return dto.ChatResponse{}, err
	}

	rows, err := s.history.ListByEmployee(ctx, employeeID)
	if err != nil {
		return dto.ChatResponse{}, fmt.Errorf("failed to load invoices: %w", err)
	}

	prompt := BuildChatPrompt(e, rows, req.UserInput)
	text, err := s.llm.GenerateResponse(ctx, chatSystemPrompt, prompt)
	if err != nil {
		return dto.ChatResponse{}, fmt.Errorf("%w: %s: %w", ErrUpstream, s.llm.GetProviderName(), err)
	}
	return dto.ChatResponse{Response: strings.TrimSpace(text)}, nil
}

func BuildChatPrompt(e dto.Employee, rows []dto.InvoiceRow, question string) string {
	var invoices strings.Builder
	invoices.WriteString("invoice_id,employee_id,amount,date,location,type,Vendor\n")
	for _, r := range rows {
		fmt.Fprintf(&invoices, "%s,%d,%s,%s,%s,%s,%s\n",
			r.InvoiceID, r.EmployeeID, r.Amount.String(), r.Date.Format(dto.HistoryDateLayout), r.Location, r.Type, r.Vendor)
	}

	return fmt.Sprintf("This is the my data in employee data in the database:\n%s\n\n"+
		"the following data is my data in invoice database: \n%s\n\n\n"+
		"Based on the above data, answer the following question:\n%s.\nGive the response in atleast 1-2 lines.",
		e.Profile(), invoices.String(), question)
}

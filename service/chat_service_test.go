package service

import (
	"context"
	"testing"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	provider := &stubLLM{response: "  You spent ₹750 on food.\n"}
	svc := NewChatService(testEmployees(), expenseHistory(), provider)

	resp, err := svc.Chat(context.Background(), dto.ChatRequest{
		EmployeeRequest: employeeReq(1),
		UserInput:       "How much did I spend on food?",
	})
	require.NoError(t, err)

	assert.Equal(t, "You spent ₹750 on food.", resp.Response)
	assert.Contains(t, provider.lastMessage, "Name: Priya Sharma")
	assert.Contains(t, provider.lastMessage, "100003,1,250,18-03-2024,Pune,Food,Dominos")
	assert.NotContains(t, provider.lastMessage, "Croma")
	assert.Contains(t, provider.lastMessage, "How much did I spend on food?.")
}

func TestChatUnknownEmployee(t *testing.T) {
	svc := NewChatService(testEmployees(), expenseHistory(), &stubLLM{})

	_, err := svc.Chat(context.Background(), dto.ChatRequest{EmployeeRequest: employeeReq(77), UserInput: "hi"})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestChatProviderFailure(t *testing.T) {
	svc := NewChatService(testEmployees(), expenseHistory(), &stubLLM{err: errUpstream})

	_, err := svc.Chat(context.Background(), dto.ChatRequest{EmployeeRequest: employeeReq(1), UserInput: "hi"})
	assert.ErrorIs(t, err, errUpstream)
}

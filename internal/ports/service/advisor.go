package service

import (
	"context"

	"github.com/Npcprogramming/Taro2.0/internal/domain"
)

// IAdvisor генератор персонального AI-совета по карте
type IAdvisor interface {
	Advise(ctx context.Context, req domain.AdviceRequest) (string, error)
}

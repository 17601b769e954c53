package converter

import (
	"math"
	"pitch_backend/internal/api/dto/game"
	"pitch_backend/internal/model"
)

func ToSessionResponse(s model.Session) game.SessionResponse {
	return game.SessionResponse{
		ID:               s.ID,
		InitialCapital:   s.InitialCapital,
		CurrentCapital:   s.CurrentCapital,
		RemainingChances: s.RemainingChances,
		RemainingRerolls: s.RemainingRerolls,
		IsFinished:       s.IsFinished,
		ProfitRate:       s.ProfitRate(),
		FinalProfitRate:  s.FinalProfitRate,
		CreatedAt:        s.CreatedAt,
	}
}

func ToSessionViewResponse(v model.SessionView) game.SessionViewResponse {
	history := make([]game.InvestmentResponse, len(v.Investments))
	for i, inv := range v.Investments {
		history[i] = ToInvestmentResponse(inv)
	}
	return game.SessionViewResponse{
		Session:     ToSessionResponse(v.Session),
		Investments: history,
	}
}

func ToRoundResponse(v model.RoundView) game.RoundResponse {
	return game.RoundResponse{
		RoundID: v.Round.ID.String(),
		Character: game.CharacterResponse{
			Key:     v.Round.Character.Key,
			Name:    v.Round.Character.Name,
			Concept: v.Round.Character.Concept,
		},
		Idea: game.IdeaResponse{
			Title:       v.Round.Idea.Title,
			Description: v.Round.Idea.Description,
		},
		SuccessProb:    v.Round.SuccessProb,
		SuccessPercent: int(math.Round(v.Round.SuccessProb * 100)),
		Tier:           game.TierResponse{Label: v.Tier.Label, Class: v.Tier.Class},
		Enchanted:      v.Round.Enchanted,
		CanEnchant:     v.CanEnchant,
		Session:        ToSessionResponse(v.Session),
	}
}

func ToInvestRequest(req game.InvestRequest) model.InvestRequest {
	return model.InvestRequest{
		Amount:  req.Amount,
		RoundID: req.RoundID,
	}
}

func ToInvestmentResponse(inv model.Investment) game.InvestmentResponse {
	return game.InvestmentResponse{
		ID:              inv.ID,
		SessionID:       inv.SessionID,
		CharacterName:   inv.CharacterName,
		IdeaTitle:       inv.IdeaTitle,
		IdeaDescription: inv.IdeaDescription,
		InvestAmount:    inv.InvestAmount,
		IsSuccess:       inv.IsSuccess,
		ProfitRate:      inv.ProfitRate,
		SystemMsg:       inv.ResultSystemMsg,
		Reaction:        inv.ResultCharacterReaction,
		CreatedAt:       inv.CreatedAt,
	}
}

func ToInvestResponse(res model.InvestResult) game.InvestResponse {
	return game.InvestResponse{
		Investment: ToInvestmentResponse(res.Investment),
		Profit:     res.Profit,
		Session:    ToSessionResponse(res.Session),
	}
}

func ToInvestmentViewResponse(v model.InvestmentView) game.InvestmentViewResponse {
	return game.InvestmentViewResponse{
		Investment:   ToInvestmentResponse(v.Investment),
		CharacterKey: v.CharacterKey,
		Session:      ToSessionResponse(v.Session),
	}
}

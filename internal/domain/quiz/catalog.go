package quiz

import (
	"errors"
	"fmt"
)

// Variant names one ordering of steps. Every variant ends with the summary
// step from which the answers are submitted.
type Variant string

const (
	VariantFull    Variant = "full"
	VariantCompact Variant = "compact"
)

var ErrUnknownVariant = errors.New("unknown quiz variant")

func Variants() []Variant { return []Variant{VariantFull, VariantCompact} }

// Steps returns a fresh copy of the step list for v.
func Steps(v Variant) ([]Step, error) {
	switch v {
	case VariantFull, "":
		return fullFunnel(), nil
	case VariantCompact:
		return compactFunnel(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}
}

func fullFunnel() []Step {
	return []Step{
		ageStep(),
		sexStep(),
		bodyTypeStep(),
		info("o-que-esperar", "O que você pode esperar:",
			"Um plano alimentar feito para a sua rotina, com refeições simples e sem extremismos."),
		weightTrendStep(),
		info("prepare-se", "Prepare-se para alcançar a sua melhor versão!",
			"Com base nas suas respostas, vamos montar um plano que cabe no seu dia a dia."),
		breakfastFoodsStep(),
		lunchStep(),
		snackStep(),
		dinnerStep(),
		dessertStep(),
		info("equilibrio", "Equilíbrio sem culpa",
			"Pão francês, sobremesas na medida, hambúrguer caseiro, arroz e feijão também cabem no seu plano."),
		routineStep(),
		sleepStep(),
		waterStep(),
		habitsStep(),
		motivationStep(),
		info("nutricionista", "Conheça sua nutricionista",
			"Seu plano é preparado por uma nutricionista a partir das suas respostas."),
		heightStep(),
		weightStep(),
		goalWeightStep(),
		profileStep(),
		info("ultima-dieta", "A última dieta que você precisará para ficar em forma!", ""),
		emailStep(),
		phoneStep(),
		nameStep(),
		cpfStep(),
		loadingStep(),
		summaryStep(),
	}
}

func compactFunnel() []Step {
	return []Step{
		ageStep(),
		sexStep(),
		bodyTypeStep(),
		desiredBodyTypeStep(),
		weightTrendStep(),
		breakfastTimeStep(),
		breakfastFoodsStep(),
		lunchStep(),
		snackStep(),
		dinnerStep(),
		dessertStep(),
		routineStep(),
		sleepStep(),
		waterStep(),
		habitsStep(),
		motivationStep(),
		heightStep(),
		weightStep(),
		goalWeightStep(),
		profileStep(),
		info("ultima-dieta", "A última dieta que você precisará para ficar em forma!", ""),
		emailStep(),
		phoneStep(),
		nameStep(),
		cpfStep(),
		loadingStep(),
		summaryStep(),
	}
}

func single(id string, k Key, title string, opts ...Option) Step {
	return Step{
		ID:          id,
		Kind:        StepSingleChoice,
		Key:         k,
		Title:       title,
		Options:     opts,
		AutoAdvance: true,
		Validate:    RequireAnswer(k, MsgSelectOption),
	}
}

func info(id, title, subtitle string) Step {
	return Step{ID: id, Kind: StepInfo, Title: title, Subtitle: subtitle}
}

func opt(value, label string) Option { return Option{Value: value, Label: label} }

func same(values ...string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = opt(v, v)
	}
	return out
}

var mealSkipOptions = []Option{
	opt("nao faco", "Não faço e não quero fazer"),
	opt("nao faco e gostaria de fazer", "Não faço e gostaria de fazer"),
}

func mealStep(id string, k Key, title string, slots ...Option) Step {
	return single(id, k, title, append(slots, mealSkipOptions...)...)
}

func ageStep() Step {
	s := single("faixa-etaria", KeyAgeBracket, "Escolha sua faixa etária para começar",
		same("18-24 anos", "25-34 anos", "35-44 anos", "45-59 anos")...)
	s.Subtitle = "Responda ao quiz e em poucos minutos receba um plano alimentar exclusivo para o seu perfil."
	return s
}

func sexStep() Step {
	return single("sexo", KeySex, "Qual é o seu sexo biológico?", same("Masculino", "Feminino")...)
}

var bodyTypeOptions = same("Magro(a)", "Falso Magro(a)", "Gordinho(a)", "Muito gordinho(a)")

func bodyTypeStep() Step {
	return single("tipo-fisico", KeyBodyType,
		"Qual dessas opções representa melhor o seu tipo físico atual?", bodyTypeOptions...)
}

func desiredBodyTypeStep() Step {
	return single("tipo-fisico-desejado", KeyDesiredBodyType,
		"Qual tipo físico você deseja alcançar?", same("Magro(a)", "Definido(a)", "Curvilíneo(a)")...)
}

func weightTrendStep() Step {
	return single("peso-comportamento", KeyWeightTrend,
		"Como o seu peso costuma se comportar ao longo do tempo?",
		opt("Dificuldade para ganhar peso/massa", "Tenho dificuldade para ganhar peso ou massa muscular."),
		opt("Oscila com facilidade", "Meu peso oscila com facilidade, perco e ganho rapidamente."),
		opt("Ganho com facilidade", "Tendo a ganhar peso com facilidade e demoro mais para eliminar."),
	)
}

func breakfastTimeStep() Step {
	return mealStep("cafe-manha", KeyBreakfastTime, "Qual é o horário em que você costuma tomar café da manhã?",
		opt("6-7", "6h–7h"), opt("7-8", "7h–8h"), opt("8-9", "8h–9h"))
}

func breakfastFoodsStep() Step {
	return Step{
		ID:    "cafe-manha-alimentos",
		Kind:  StepMultiChoice,
		Key:   KeyBreakfastFoods,
		Title: "O que você quer comer no café da manhã?",
		Options: []Option{
			opt("pao-frances", "Pão francês"),
			opt("pao-integral", "Pão de forma integral"),
			opt("ovo", "Ovo"),
			opt("requeijao", "Requeijão"),
			opt("cafe", "Café"),
			opt("cafe-com-leite", "Café com leite"),
			opt("nao-quero", "Não quero fazer café da manhã"),
		},
		Validate: RequireSelection(KeyBreakfastFoods, MsgBreakfastFoods),
	}
}

func lunchStep() Step {
	return mealStep("almoco", KeyLunchTime, "Qual é o horário em que você costuma almoçar?",
		opt("11-12", "11h–12h"), opt("12-13", "12h–13h"), opt("13-14", "13h–14h"))
}

func snackStep() Step {
	return mealStep("lanche-tarde", KeyAfternoonSnack, "Em qual horário você costuma fazer o lanche da tarde?",
		opt("14-15", "14h–15h"), opt("15-16", "15h–16h"), opt("16-17", "16h–17h"))
}

func dinnerStep() Step {
	return mealStep("jantar", KeyDinnerTime, "Qual é o horário em que você costuma jantar?",
		opt("16-18", "16h–18h"), opt("18-20", "18h–20h"), opt("20-22", "20h–22h"))
}

func dessertStep() Step {
	return single("sobremesa", KeyDessert, "Você quer ter uma opção de sobremesa no seu plano alimentar?",
		opt("sim", "Sim, com certeza!"), opt("nao", "Não, prefiro evitar."))
}

func routineStep() Step {
	return single("rotina", KeyRoutine, "Como você descreveria sua rotina durante o dia?",
		opt("sedentario", "Passo a maior parte do tempo sentado(a)"),
		opt("moderado", "Pausas ativas ou movimento ocasional"),
		opt("ativo", "Em pé ou em movimento quase todo o dia"))
}

func sleepStep() Step {
	return single("sono", KeySleep, "Quantas horas de sono você costuma ter por noite?",
		opt("<5", "Menos de 5 horas"), opt("5-6", "5–6 horas"), opt("7-8", "7–8 horas"), opt(">8", "Mais de 8 horas"))
}

func waterStep() Step {
	return single("agua", KeyWater, "Qual é a sua média de consumo de água por dia?",
		opt("quase nao", "Quase não bebo água"),
		opt("~500ml", "Aproximadamente 2 copos (500 ml)"),
		opt("0.5-1.5L", "2–6 copos (0,5–1,5 L)"),
		opt(">6 copos", "Mais de 6 copos"))
}

func habitsStep() Step {
	return Step{
		ID:       "habitos",
		Kind:     StepMultiChoice,
		Key:      KeyHabits,
		Title:    "Você se identifica com algum desses hábitos alimentares?",
		Subtitle: "(selecione os que se aplicam)",
		Options: []Option{
			opt("madrugada", "Como de madrugada"),
			opt("emocional", "Como por emoção/ansiedade/tédio"),
			opt("doces", "Dificuldade em resistir a doces"),
			opt("finais de semana", "Exagero nos fins de semana"),
			opt("nenhum", "Nenhum desses"),
		},
		Validate: RequireSelection(KeyHabits, MsgHabits),
	}
}

func motivationStep() Step {
	return single("motivo", KeyMotivation, "Qual é o principal motivo que te faz querer entrar em forma?",
		opt("autoestima", "Aumentar autoconfiança e autoestima"),
		opt("saude", "Melhorar saúde e disposição"),
		opt("roupas", "Voltar a usar as roupas que gosto"),
		opt("pos-gestacao", "Recuperar o corpo pós-gestação"),
		opt("outro", "Outro motivo pessoal"))
}

func numeric(id string, k Key, title, unit, def string, min, max float64, msg string) Step {
	return Step{
		ID:       id,
		Kind:     StepNumeric,
		Key:      k,
		Title:    title,
		Unit:     unit,
		Default:  def,
		Min:      min,
		Max:      max,
		Validate: RequireNumber(k, min, max, msg),
	}
}

func heightStep() Step {
	return numeric("altura", KeyHeightCM, "Qual é a sua altura (em centímetros)?", "cm", "170", 120, 220, MsgHeight)
}

func weightStep() Step {
	return numeric("peso", KeyWeightKG, "Informe seu peso atual (em kg):", "kg", "70", 35, 250, MsgWeight)
}

func goalWeightStep() Step {
	return numeric("meta-peso", KeyGoalWeightKG, "Qual é a sua meta de peso?", "kg", "65", 35, 250, MsgGoalWeight)
}

func profileStep() Step {
	return Step{ID: "perfil", Kind: StepProfile, Key: KeyBMI, Title: "Aqui está o seu perfil de bem-estar"}
}

func emailStep() Step {
	return Step{
		ID:       "email",
		Kind:     StepText,
		Key:      KeyEmail,
		Title:    "Digite seu e-mail para receber seu plano alimentar personalizado:",
		Validate: ValidateEmail,
	}
}

func phoneStep() Step {
	return Step{ID: "whatsapp", Kind: StepText, Key: KeyPhone, Title: "Informe seu número de WhatsApp:", Validate: ValidatePhone}
}

func nameStep() Step {
	return Step{
		ID:       "nome",
		Kind:     StepText,
		Key:      KeyFullName,
		Title:    "Qual seu nome?",
		Subtitle: "(nome completo)",
		Validate: ValidateFullName,
	}
}

func cpfStep() Step {
	return Step{ID: "cpf", Kind: StepText, Key: KeyCPF, Title: "Informe seu CPF:", Validate: ValidateCPF}
}

func loadingStep() Step {
	return Step{ID: "carregando", Kind: StepLoading, Title: "Preparando seu plano alimentar...", AutoAdvance: true}
}

func summaryStep() Step {
	return Step{ID: "resumo", Kind: StepSummary, Title: "Confirme suas informações", Subtitle: "Revise seu perfil antes de prosseguir"}
}

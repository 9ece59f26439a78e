package quiz

// Key identifies one question in the answer set.
type Key string

const (
	KeyAgeBracket      Key = "faixa_etaria"
	KeySex             Key = "sexo_biologico"
	KeyBodyType        Key = "tipo_fisico"
	KeyDesiredBodyType Key = "tipo_fisico_desejado"
	KeyWeightTrend     Key = "peso_comportamento"
	KeyBreakfastTime   Key = "cafe_manha"
	KeyBreakfastFoods  Key = "breakfast_foods"
	KeyLunchTime       Key = "almoco"
	KeyAfternoonSnack  Key = "lanche_tarde"
	KeyDinnerTime      Key = "jantar"
	KeyDessert         Key = "sobremesa"
	KeyRoutine         Key = "rotina_dia"
	KeySleep           Key = "sono"
	KeyWater           Key = "agua"
	KeyHabits          Key = "habitos"
	KeyMotivation      Key = "motivo"
	KeyHeightCM        Key = "altura_cm"
	KeyWeightKG        Key = "peso_kg"
	KeyGoalWeightKG    Key = "meta_peso_30d"
	KeyBMI             Key = "imc"
	KeyEmail           Key = "email"
	KeyPhone           Key = "whatsapp"
	KeyFullName        Key = "nome_completo"
	KeyCPF             Key = "cpf"
)

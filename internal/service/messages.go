package service

// Replies sent back to WhatsApp users.
const (
	msgWelcome = "Olá! Bem-vindo ao Contech Bot. " +
		"Você busca OPORTUNIDADES ou quer CONTRATAR?"
	msgLocationReceived = "Localização recebida! Agora digite VAGAS para ver obras ao seu redor."
	msgRestart          = "Olá novamente! Você busca OPORTUNIDADES ou quer CONTRATAR?"
	msgAskWorkerName    = "Perfeito! Qual seu nome completo?"
	msgAskHirerName     = "Ótimo! Qual o nome completo do responsável pela contratação?"
	msgChooseTypeHelp   = "Não entendi. Responda OPORTUNIDADES se você busca trabalho " +
		"ou CONTRATAR se você quer encontrar profissionais."
	msgAskNameAgain = "Por favor, envie seu nome completo para continuar o cadastro."
	msgRegistered   = "Cadastro concluído! " +
		"Digite VAGAS para ver obras próximas."
	msgShareLocation = "Para encontrar obras próximas, preciso saber onde você está. " +
		"Por favor, clique no clipe (anexo) e me envie sua Localização."
	msgNoNearbyJobs = "Não encontramos vagas próximas no momento. " +
		"Tente novamente mais tarde."
	msgNearbyJobsHeader = "Encontrei as seguintes vagas próximas a você:"
	msgUnknownCommand   = "Opção não reconhecida. No momento, você pode digitar VAGAS " +
		"para ver oportunidades próximas."
	msgStageRecovered = "Houve um problema ao entender seu estágio de conversa. " +
		"Vamos recomeçar. Você busca OPORTUNIDADES ou quer CONTRATAR?"
)

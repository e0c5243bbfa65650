package defaults

// Built-in brute-force wordlists. The Portuguese-language sets matter in
// practice: a large share of leftover findings in the wild come from pt-BR
// hosting environments.

// DefaultFileWords are common file basenames worth probing directly.
var DefaultFileWords = []string{
	"README", "assets", "composer", "content", "contents", "debug", "logging",
	"package", "readme", "service", "service1", "swagger", "test", "trace", "ws",
}

// BackupDirectoryWords name directories that hold copies of a site.
var BackupDirectoryWords = []string{
	"anterior", "antigo", "archive", "archived", "archives", "atual", "back",
	"backup", "bkp", "copy", "copia", "current", "deletar", "delete", "dev",
	"devel", "development", "draft", "guardar", "historical", "history", "hml",
	"homolog", "homologacao", "homologation", "latest", "lixo", "log", "logs",
	"new", "novo", "old", "old_version", "orig", "original", "prd", "prod",
	"producao", "production", "rascunho", "release", "reserva", "salvo", "save",
	"saved", "security", "seguranca", "stable", "staging", "temp", "temporario",
	"temporary", "tmp", "trash", "version", "versao",
}

// WebRelatedWords name document roots and deployment trees.
var WebRelatedWords = []string{
	"backend", "conteudo", "deploy", "frontend", "hosting", "hospedagem",
	"htdocs", "html", "httpdocs", "inetpub", "page", "pagina", "portal",
	"public", "public_html", "publication", "publicacao", "site", "sistema",
	"static", "system", "web", "webpage", "webroot", "website", "www", "www-data",
	"arq", "arquivo", "arquivos",
}

// VersionControlWords name VCS directories left in web roots.
var VersionControlWords = []string{
	".git", ".svn", "bk", "cvs", "git", "hg", "svn",
}

// DateVersionWords name date and version stamped copies.
var DateVersionWords = []string{
	"1.0", "2.0", "2020", "2021", "2022", "2023", "2024", "2025", "abr", "abril",
	"ago", "agosto", "apr", "april", "aug", "august", "dec", "december", "dez",
	"dezembro", "feb", "february", "fev", "fevereiro", "jan", "janeiro", "jul",
	"july", "jun", "junho", "june", "mai", "maio", "mar", "march", "marco", "may",
	"nov", "november", "novembro", "oct", "october", "out", "outubro", "sep",
	"september", "set", "setembro", "v1", "v2", "v3",
}

// EnglishCommonWords are general-purpose English probe terms.
var EnglishCommonWords = []string{
	"access", "account", "accounting", "action", "actions", "activity", "activities",
	"admin", "administrative", "app", "application", "approved", "attachment",
	"authentication", "balance", "billing", "board", "bookkeeping", "box", "branch",
	"budget", "candidate", "certificate", "client", "compliance", "company",
	"configuration", "conf", "config", "contract", "corporate", "credit", "data",
	"database", "db", "debit", "default", "department", "developer", "digitize",
	"dist", "documentation", "download", "dump", "election", "electoral", "email",
	"emergency", "encryption", "entity", "expense", "export", "financial", "fiscal",
	"firewall", "flow", "form", "foundation", "government", "group", "guide",
	"guidelines", "guides", "help", "hidden", "hiring", "id", "important", "import",
	"income", "information", "input", "install", "institutional", "internal",
	"inventory", "intranet", "loss", "mail", "maintenance", "management", "manual",
	"manuals", "memo", "message", "ministry", "model", "network", "nfe", "nfse",
	"norm", "normative", "norms", "note", "notice", "organization", "ordinance",
	"output", "password", "payable", "payment", "pending", "planning", "policy",
	"prefecture", "private", "printing", "printer", "process", "product", "program",
	"programs", "project", "proposal", "proposals", "protocol", "proxy", "purchase",
	"queue", "receivable", "record", "recovery", "register", "registration",
	"regulated", "regulation", "regulatory", "report", "reports", "research",
	"resolution", "restricted", "result", "reviewed", "sale", "sales", "scanner",
	"secret", "secretary", "sent", "server", "service", "settings", "setup",
	"society", "statement", "strategy", "strategic", "supplier", "support", "tax",
	"test", "token", "transaction", "unit", "upload", "uploads", "user", "vpn", "wap",
}

// PortugueseCommonWords are general-purpose pt-BR probe terms.
var PortugueseCommonWords = []string{
	"acesso", "ajuda", "api", "aplicacao", "aplicativo", "aprovado", "configuracao",
	"dados", "desenvolvedor", "documentacao", "emergencia", "importante",
	"informacao", "interno", "manutencao", "pendente", "privado", "projeto",
	"recuperacao", "restrito", "revisado", "secreto", "segredo", "senha",
	"servico", "servidor", "suporte", "teste", "usuario", "webservice", "webservices",
}

// PortugueseBusinessWords cover financial and commercial systems.
var PortugueseBusinessWords = []string{
	"admin", "administrativo", "balanco", "boleto", "cadastro", "carteira",
	"cliente", "cobranca", "comercial", "compra", "contabil", "contabilidade",
	"credito", "debito", "despesa", "diretoria", "estoque", "extrato", "fatura",
	"financeiro", "fiscal", "fluxo", "formulario", "fornecedor", "gerencia",
	"investimento", "lucro", "nfe", "nfse", "orcamento", "orcamentos", "pagar",
	"pagamento", "pesquisa", "prejuizo", "produto", "receber", "receita", "registro",
	"verificar", "relatorio", "relatorios", "resultado", "transacao", "venda", "vendas",
	"valor", "valores", "campanha", "campanhas", "cartao", "cartoes", "comissao", "comissoes",
	"corretora", "corretoras", "cotacao", "cotacoes", "financiamento", "consorcio", "imobiliario",
	"imoveis", "imovel", "investidor", "investidores", "leilao", "leiloes", "lote", "lotes",
	"patrimonio", "prospeccao", "prospeccoes", "seguros", "seguro", "taxa", "taxas", "prolabore",
	"tributo", "tributos", "tributacao", "tributacoes", "tributario", "tributarios", "vencimento",
	"vencimentos", "vendedor", "vendedores", "vitrine", "vitrines",
}

// PortugueseCorporateWords cover government and corporate systems.
var PortugueseCorporateWords = []string{
	"acao", "acoes", "associacao", "atividade", "atividades", "auditoria",
	"candidato", "cnpj", "comite", "compliance", "concurso", "conselho", "conta",
	"contratacao", "contrato", "contratos", "corporativo", "cpf", "departamento", "diretrizes",
	"edital", "eleicao", "eleitoral", "empresa", "entidade", "estrategia",
	"estrategico", "filial", "fundacao", "gestao", "governo", "grupo", "guia",
	"guias", "imposto", "institucional", "inscricao", "licitacao", "manual",
	"manuals", "memorando", "ministerio", "norma", "normas", "normativo", "nota",
	"organizacao", "planejamento", "politica", "portaria", "prefeitura", "processo",
	"programa", "programas", "proposta", "propostas", "protocolo", "regulamento",
	"regulamentacao", "resolucao", "rg", "sede", "secretaria", "sociedade", "unidade",
}

// PortugueseTechnicalWords cover infrastructure terms.
var PortugueseTechnicalWords = []string{
	"anexo", "autenticacao", "caixa", "certificado", "correio", "criptografia",
	"digitalizar", "download", "email", "entrada", "enviado", "extranet", "fila",
	"firewall", "impressao", "impressora", "intranet", "mensagem", "proxy", "rede",
	"saida", "scanner", "token", "upload", "uploads", "vpn", "variaveis",
	"variavel",
}

// DatabaseConfigWords cover data export and installation residue.
var DatabaseConfigWords = []string{
	"conf", "config", "data", "database", "db", "dist", "dump", "exportacao",
	"hidden", "importacao", "install", "internal", "modelo", "padrao", "private",
	"settings", "setup",
}

// BackupWords returns the full built-in brute-force wordlist. Callers own
// the slice.
func BackupWords() []string {
	groups := [][]string{
		DefaultFileWords,
		BackupDirectoryWords,
		WebRelatedWords,
		VersionControlWords,
		DateVersionWords,
		EnglishCommonWords,
		PortugueseCommonWords,
		PortugueseBusinessWords,
		PortugueseCorporateWords,
		PortugueseTechnicalWords,
		DatabaseConfigWords,
	}
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

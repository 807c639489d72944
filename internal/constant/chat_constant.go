package constant

// Turn types carried on the inbound event and the call log.
const (
	TurnTypeText     = "text"
	TurnTypeDocument = "document"
)

// Control keywords. Exact, case-sensitive matches that flip a process-wide
// flag instead of producing a model answer.
const (
	CmdEnableReference         = "enableReference"
	CmdDisableReference        = "disableReference"
	CmdEnableConversationMode  = "enableConversationMode"
	CmdDisableConversationMode = "disableConversationMode"
	CmdEnableRAG               = "enableRAG"
	CmdDisableRAG              = "disableRAG"
)

const (
	MsgReferenceEnabled         = "Reference is enabled"
	MsgReferenceDisabled        = "Reference is disabled"
	MsgConversationModeEnabled  = "Conversation mode is enabled"
	MsgConversationModeDisabled = "Conversation mode is disabled"
	MsgRAGEnabled               = "RAG is enabled"
	MsgRAGDisabled              = "RAG is disabled"
)

// Sizing defaults for the RAG pipeline.
const (
	QueryCeilingChars  = 1800 // raw queries at or above this bypass retrieval and history
	HistoryWindowChars = 4000
	DocumentChunkSize  = 1000
	DocumentChunkLap   = 100
	SearchTopK         = 3
	SummaryChunkLimit  = 3 // summarize at most the first N chunks of a document
	RetentionHours     = 48
)

// RequestTimeLayout is the format of request_time strings in events and call
// log rows. Lexicographic order equals chronological order.
const RequestTimeLayout = "2006-01-02 15:04:05"

// Bare human/assistant wrapper markers.
const (
	HumanPrompt = "\n\nUser:"
	AIPrompt    = "\n\nAssistant:"
)

// Condense-with-history templates. Placeholders: chat history, question.
const (
	CondenseWithHistoryPromptKO = `

User: 다음은 User와 Assistant의 친근한 대화입니다. Assistant은 상황에 맞는 구체적인 세부 정보를 충분히 제공합니다. Assistant는 모르는 질문을 받으면 솔직히 모른다고 말합니다.

%s

User: %s

Assistant:`

	CondenseWithHistoryPromptEN = `Using the following conversation, answer friendly for the newest question. If you don't know the answer, just say that you don't know, don't try to make up an answer. You will be acting as a thoughtful advisor.

%s

User: %s

Assistant:`
)

// Context QA templates used when conversation mode is off. Placeholders:
// retrieved context, question.
const (
	ContextQAPromptKO = `

User: 다음은 User과 Assistant의 친근한 대화입니다. Assistant은 상황에 맞는 구체적인 세부 정보를 충분히 제공합니다. Assistant는 모르는 질문을 받으면 솔직히 모른다고 말합니다.

%s

Question: %s

Assistant:`

	ContextQAPromptEN = `

User: Using the following conversation, answer friendly for the newest question. If you don't know the answer, just say that you don't know, don't try to make up an answer. You will be acting as a thoughtful advisor.

%s

Question: %s

Assistant:`
)

// Chain strategy templates. The condense step rewrites a follow-up into a
// standalone question; the answer step grounds it in a context block.
const (
	CondenseStandalonePrompt = `To create a standalone question, given the following conversation and a follow up question, rephrase the follow up question to be a standalone question, in its original language.

Chat History:
%s
Follow Up Input: %s
Standalone question:`

	ChainContextQAPrompt = `

User:
Here is the context, inside <context></context> XML tags.
Based on the context as below, answer the question. If you don't know the answer, just say that you don't know, don't try to make up an answer.

<context>
%s
</context>

User: Use at maximum 5 sentences to answer the following question.
%s

If the answer is not in the context, say "I don't know"

Assistant:`
)

// Document summary templates. Placeholder: document text.
const (
	SummaryPromptKO = `

User: 다음 텍스트를 요약해서 500자 이내로 설명하세오.

%s

Assistant:`

	SummaryPromptEN = `

User: Write a concise summary of the following:

%s

Assistant:`

	SummaryFallbackMessage = "Fail to summarize the document. Try again..."
)

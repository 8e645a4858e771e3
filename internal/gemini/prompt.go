package gemini

import "strings"

const promptTemplate = `You are a bond trading analyst. Extract structured trade data from the chat transcript below.

DIRECTION RULES. Separate a client ASKING for a price from a client MAKING a price.
1. Client asks for YOUR bid ("what's your bid?", "can you bid me?", "give me a bid on...") -> client is SELLING.
2. Client states THEIR bid ("I bid 10mm at 100", "Bosera bid 5mm", "<client> bid <size>") -> client is BUYING.
3. Client asks for YOUR offer or ask ("what's your offer?", "can you offer me?", "what's your ask?") -> client is BUYING.
4. Client states THEIR offer ("I offer 10mm at 100", "Bosera offers 5mm") -> client is SELLING.
5. Client asks for a two-way, both sides, or bid and offer -> TWO-WAY.

WORKED EXAMPLES
"Hi, what's your bid on 5MM of the Treasury 4.5% due 2034?" -> SELL
"Can you offer me 10MM of Apple bonds?" -> BUY
"I need a two-way quote on 20MM Microsoft 3.5s" -> TWO-WAY
"Bosera: Bosera bid 10mm DKS 52\nPaul: @ 100\nBosera: Done" -> BUY
"Client offers 15mm corporate bonds at 99.5" -> SELL

TRANSCRIPT
----------
{{transcript}}
----------

For every trade activity return an object with:
- clientName: counterparty in uppercase, e.g. "ABC FUND"
- bondName and isin, when mentioned
- ticker, when mentioned, e.g. "AAPL"
- size: millions as a number, e.g. 10 for "10MM"
- currency: USD, EUR, GBP..., "USD" when not mentioned
- direction: BUY, SELL or TWO-WAY following the rules above
- price: number, when mentioned
- notes: market color, pricing comments, context
- confidence: "high", "medium" or "low"

Return ONLY a JSON array without markdown, for example:
[{"clientName":"ABC FUND","bondName":"Apple 2.5% 2030","isin":"US0378331005","ticker":"AAPL","size":10,"currency":"USD","direction":"SELL","price":98.75,"notes":"Client asking for bid on 10MM","confidence":"high"}]
Return [] when there are no activities.`

// BuildPrompt renders the extraction prompt for transcript
func BuildPrompt(transcript string) string {
	return strings.Replace(promptTemplate, "{{transcript}}", transcript, 1)
}

// internal/assistant/responder.go
package assistant

import "strings"

const cannedIDPrefix = "response-"

// ResponseSource records whether a reply came from the canned table or the
// fallback generator.
type ResponseSource string

const (
	ResponseSourceCanned   ResponseSource = "canned"
	ResponseSourceFallback ResponseSource = "fallback"
)

// Reply is the outcome of Respond. Strategy is empty for canned replies.
type Reply struct {
	Message         Message        `json:"message"`
	Source          ResponseSource `json:"source"`
	Strategy        Strategy       `json:"strategy,omitempty"`
	DetectedSources []string       `json:"detectedSources"`
}

type cannedResponse struct {
	query   string
	content string
}

var cannedResponses = indexCannedResponses([]cannedResponse{
	{
		query: "Summarize this week's key metrics",
		content: "Here's your weekly summary:\n" +
			"• Revenue: $54.2K (+8.4% vs last week)\n" +
			"• New customers: 127 (+12%)\n" +
			"• Ad spend: $18.9K (-3.1%)\n" +
			"• Website sessions: 42.7K (+5.6%)",
	},
	{
		query: "What changed the most since last week?",
		content: "The biggest movers since last week:\n" +
			"• Meta Ads cost per acquisition dropped 18% after the new creative launched\n" +
			"• Organic sessions rose 11%, led by the pricing page\n" +
			"• Trial-to-paid conversion slipped from 14.2% to 12.9%",
	},
	{
		query: "What's our MRR trend over the last 6 months?",
		content: "MRR grew from $182K to $214K over the last 6 months, a 17.6% increase. " +
			"Growth was steadiest in March and April (+4.1% and +3.8%), and net new MRR dipped in June as churn rose to 2.3%.",
	},
	{
		query: "What are our top traffic sources?",
		content: "Top traffic sources over the last 30 days:\n" +
			"• Organic search: 41% of sessions\n" +
			"• Paid social: 22%\n" +
			"• Direct: 18%\n" +
			"• Referral: 11%\n" +
			"• Email: 8%",
	},
	{
		query: "How many deals are in each pipeline stage?",
		content: "Current pipeline: 64 deals in Discovery, 38 in Demo, 21 in Proposal, 9 in Negotiation. " +
			"Proposal has the highest value at $412K.",
	},
	{
		query: "What's our ROAS by Meta campaign?",
		content: "ROAS by Meta campaign this month:\n" +
			"• Retargeting – Q3: 4.8x\n" +
			"• Lookalike – Trial Signups: 3.1x\n" +
			"• Prospecting – Broad: 1.6x",
	},
	{
		query: "Compare ad spend with revenue over time",
		content: "Ad spend rose 12% quarter over quarter while revenue rose 19%, " +
			"so blended return on ad spend improved from 2.7x to 3.0x.",
	},
	{
		query: "How does website traffic translate into new leads?",
		content: "About 2.4% of website sessions become HubSpot leads. " +
			"Pricing page visitors convert at 6.1%, nearly three times the site average.",
	},
	{
		query: "Compare Meta Ads and Google Ads performance",
		content: "Meta Ads delivered a 3.2x ROAS at $41 CPA; Google Ads delivered 2.6x at $58 CPA. " +
			"Google Ads drives fewer but larger deals.",
	},
	{
		query: "What's customer lifetime value by acquisition channel?",
		content: "Customer lifetime value by channel:\n" +
			"• Organic: $4,820\n" +
			"• Referral: $4,310\n" +
			"• Paid search: $3,140\n" +
			"• Paid social: $2,260",
	},
	{
		query: "Which campaigns drive the most paying customers?",
		content: "The Retargeting – Q3 campaign produced 48 paying customers this quarter, " +
			"followed by Webinar Series (31) and Lookalike – Trial Signups (22).",
	},
	{
		query: "How long does it take from closed deal to first payment?",
		content: "On average it takes 9.4 days from a closed-won deal in HubSpot to the first Stripe payment. " +
			"Annual plans take longer (14.2 days) than monthly plans (6.1 days).",
	},
})

func indexCannedResponses(responses []cannedResponse) map[string]string {
	index := make(map[string]string, len(responses))
	for _, r := range responses {
		index[NormalizeQuery(r.query)] = r.content
	}
	return index
}

// NormalizeQuery lowercases input, collapses whitespace and strips trailing
// sentence punctuation so trivially different phrasings match.
func NormalizeQuery(input string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(input)), " ")
	return strings.TrimRight(normalized, "?.! ")
}

// LookupCannedResponse returns the canned answer for input, if any.
func LookupCannedResponse(input string) (string, bool) {
	content, ok := cannedResponses[NormalizeQuery(input)]
	return content, ok
}

// Respond answers input from the canned table when possible and falls back to
// ComposeFallback otherwise.
func Respond(input string, ctx SuggestionContext) Reply {
	if content, ok := LookupCannedResponse(input); ok {
		return Reply{
			Message:         newMessage(cannedIDPrefix, content),
			Source:          ResponseSourceCanned,
			DetectedSources: DetectDataSources(input),
		}
	}

	fallback := ComposeFallback(input, ctx)
	return Reply{
		Message:         fallback.Message,
		Source:          ResponseSourceFallback,
		Strategy:        fallback.Strategy,
		DetectedSources: fallback.DetectedSources,
	}
}

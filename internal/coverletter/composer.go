// Package coverletter assembles generation prompts for a short application
// letter and formats the generated text into a fixed markdown block.
package coverletter

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spigell/company-scout/internal/ai"
	"github.com/spigell/company-scout/internal/candidate"
	"github.com/spigell/company-scout/internal/util"
	"go.uber.org/zap"
)

const (
	defaultMaxLogLength = 200

	maxSubjectLines = 3

	// Placeholders used when no candidate profile is available.
	placeholderName    = "[Your Name]"
	placeholderWebsite = "[Your Website]"
	placeholderResume  = "[Your Resume]"
)

// Input carries everything the composer needs for one letter.
type Input struct {
	Company            string
	CompanyDescription string
	InterestReason     string
	Profile            *candidate.Profile
}

type Composer struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewComposer(generator ai.Generator, logger *zap.Logger, maxLogLength int) *Composer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Composer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Compose generates the letter body and subject lines and renders the fixed
// markdown block. Generation failures degrade to an empty body or templated
// subject lines; the block structure is always emitted.
func (c *Composer) Compose(ctx context.Context, in Input) string {
	body := c.generate(ctx, buildLetterPrompt(in))
	subjects := parseSubjectLines(c.generate(ctx, buildSubjectPrompt(in.Company)))

	return formatBlock(in, body, subjects)
}

func (c *Composer) generate(ctx context.Context, prompt string) string {
	if c.generator == nil {
		return ""
	}

	c.logger.Debug("cover letter generation request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateContent(ctx, prompt)
	if err != nil {
		c.logger.Warn("cover letter generation failed", zap.Error(err))
		return ""
	}

	c.logger.Debug("cover letter generation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, c.maxLogLen)),
	)

	return stripFences(raw)
}

func buildLetterPrompt(in Input) string {
	name := placeholderName
	objective := ""
	var roles, communication, technical, soft []string

	if p := in.Profile; p != nil {
		if p.Personal.Name != "" {
			name = p.Personal.Name
		}
		objective = p.Goals.Objective
		roles = topN(p.Goals.IdealRoles, 3)
		communication = topN(p.Skills.CommunicationAndStrategy, 3)
		technical = topN(p.Skills.AIAndTechnical, 3)
		soft = topN(p.Skills.SoftSkills, 3)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a concise cover letter (100-120 words) for %s applying to %s.\n\n", name, in.Company)
	fmt.Fprintf(&b, "About the company: %s\n\n", in.CompanyDescription)
	fmt.Fprintf(&b, "Why the candidate is interested: %s\n\n", in.InterestReason)
	fmt.Fprintf(&b, "Candidate's career objective: %s\n\n", objective)
	fmt.Fprintf(&b, "Ideal roles the candidate is seeking: %s\n\n", strings.Join(roles, ", "))
	b.WriteString("Key skills to highlight:\n")
	fmt.Fprintf(&b, "- Communication and strategy: %s\n", strings.Join(communication, ", "))
	fmt.Fprintf(&b, "- AI and technical: %s\n", strings.Join(technical, ", "))
	fmt.Fprintf(&b, "- Soft skills: %s\n\n", strings.Join(soft, ", "))
	b.WriteString("The cover letter should be professional, personalized to the company, and highlight relevant experience and skills.\n")
	b.WriteString("It should be between 100 and 120 words and must not include a signature; the signature is appended separately.")

	return b.String()
}

func buildSubjectPrompt(company string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate three concise, attention-grabbing email subject lines for a job application to %s.\n", company)
	b.WriteString("The subject lines should be professional but stand out in a recruiter's inbox.\n")
	b.WriteString("Each should be no more than 8 words.\n")
	b.WriteString("Format as a numbered list with just the subject lines, nothing else.")

	return b.String()
}

// parseSubjectLines extracts up to three subject lines from a numbered or
// bulleted list response.
func parseSubjectLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		for _, prefix := range []string{"1.", "2.", "3.", "-", "*"} {
			line = strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == maxSubjectLines {
			break
		}
	}
	return lines
}

func formatBlock(in Input, body string, subjects []string) string {
	name, website, resume := placeholderName, placeholderWebsite, placeholderResume
	if p := in.Profile; p != nil {
		if p.Personal.Name != "" {
			name = p.Personal.Name
		}
		if p.Personal.Website != "" {
			website = p.Personal.Website
		}
		if p.Personal.Resume != "" {
			resume = p.Personal.Resume
		}
	}

	fallbacks := []string{
		fmt.Sprintf("Application for [Position] - %s", name),
		fmt.Sprintf("Experienced Professional Interested in %s", in.Company),
		fmt.Sprintf("Connecting About Opportunities at %s", in.Company),
	}
	for len(subjects) < maxSubjectLines {
		subjects = append(subjects, fallbacks[len(subjects)])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Cover Letter for %s\n\n", in.Company)
	b.WriteString("### Suggested Subject Lines:\n")
	for i, subject := range subjects[:maxSubjectLines] {
		fmt.Fprintf(&b, "%d. %s\n", i+1, subject)
	}
	b.WriteString("\n### Cover Letter:\n\n")
	b.WriteString(body)
	b.WriteString("\n\nBest regards,\n\n")
	fmt.Fprintf(&b, "%s\n%s\n%s\n", name, website, resume)

	return b.String()
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	raw = strings.TrimPrefix(raw, "```markdown")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSpace(raw)
	if idx := strings.LastIndex(raw, "```"); idx != -1 {
		raw = raw[:idx]
	}

	return strings.TrimSpace(raw)
}

func topN(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

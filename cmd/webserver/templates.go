package main

const baseTemplate = `{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Study Guide Creator</title>
<style>
body { font-family: Georgia, serif; max-width: 860px; margin: 0 auto; padding: 2em; color: #222; }
nav { border-bottom: 2px solid #446; padding-bottom: 0.5em; margin-bottom: 1.5em; }
nav a { margin-right: 1.5em; color: #446; text-decoration: none; font-weight: bold; }
h1, h2 { color: #446; }
.card { background: #f7f7fa; border-left: 4px solid #446; margin: 1em 0; padding: 0.8em 1.2em; }
.correct { color: #2a7; }
.incorrect { color: #c33; }
label { display: block; margin-top: 0.8em; font-weight: bold; }
input[type=text], textarea, select { width: 100%; padding: 0.4em; margin-top: 0.2em; }
button { margin-top: 1em; background: #446; color: white; border: none; padding: 0.6em 1.4em; cursor: pointer; }
.meta { color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<nav>
<a href="/">Home</a>
<a href="/create">New Study Guide</a>
</nav>
{{template "content" .}}
</body>
</html>{{end}}`

var pageTemplates = map[string]string{
	"home": `{{define "content"}}
<h1>Study Guides</h1>
{{if .Guides}}
{{range .Guides}}
<div class="card">
<a href="/guide/{{.ID}}"><strong>{{.Title}}</strong></a>
<p class="meta">{{.Subject}} | {{.Level}} | {{.CreatedAt.Format "2006-01-02 15:04"}}</p>
</div>
{{end}}
{{else}}
<p>No study guides yet. <a href="/create">Create one</a>.</p>
{{end}}

<h2>Quizzes</h2>
{{if .Quizzes}}
{{range .Quizzes}}
<div class="card">
<a href="/quiz/{{.ID}}"><strong>{{.Title}}</strong></a>
<p class="meta">{{.Subject}} | {{.Difficulty}} | {{.CreatedAt.Format "2006-01-02 15:04"}}</p>
</div>
{{end}}
{{else}}
<p>No quizzes yet.</p>
{{end}}
{{end}}`,

	"create": `{{define "content"}}
<h1>New Study Guide</h1>
<form method="POST" action="/create">
<label>Subject</label>
<input type="text" name="subject" required>
<label>Education level</label>
<select name="level">
<option value="high_school">High school</option>
<option value="undergraduate" selected>Undergraduate</option>
<option value="graduate">Graduate</option>
</select>
<label>Number of quiz questions</label>
<input type="text" name="num_questions" value="10">
<label>Study material</label>
<textarea name="text" rows="16" placeholder="Paste the material to study here" required></textarea>
<button type="submit">Create</button>
</form>
{{end}}`,

	"guide": `{{define "content"}}
<h1>{{.Guide.Title}}</h1>
<p class="meta">{{.Guide.Subject}} | {{.Guide.Level}}</p>
<p>{{.Guide.Summary}}</p>

{{if .Guide.KeyConcepts}}
<h2>Key Concepts</h2>
{{range .Guide.KeyConcepts}}
<div class="card">
<strong>{{.Name}}</strong>
{{if .Detailed}}<p>{{.Definition}}</p>{{end}}
{{if .Importance}}<p class="meta">{{.Importance}}</p>{{end}}
</div>
{{end}}
{{end}}

{{if .Guide.ChapterSummaries}}
<h2>Chapter Summaries</h2>
{{range .Guide.ChapterSummaries}}
<h3>{{.Title}}</h3>
<p>{{.Summary}}</p>
{{end}}
{{end}}

{{if .Guide.Flashcards}}
<h2>Flashcards</h2>
{{range .Guide.Flashcards}}
<div class="card">
<strong>{{.Front}}</strong>
<p>{{.Back}}</p>
</div>
{{end}}
{{end}}

<p><a href="/quiz/{{.QuizID}}"><button>Take the quiz</button></a></p>
{{end}}`,

	"take": `{{define "content"}}
<h1>{{.Quiz.Title}}</h1>
<p class="meta">{{len .Quiz.Questions}} questions | {{.Quiz.TimeLimit}} minutes | pass at {{.Quiz.PassingScore}}%</p>
<form method="POST" action="/quiz/{{.Quiz.ID}}/submit">
{{range $i, $q := .Quiz.Questions}}
<div class="card">
<p><strong>{{add $i 1}}. {{$q.Question}}</strong></p>
{{if eq $q.Type "multiple_choice"}}
{{range $q.Options}}
<p><label style="font-weight:normal"><input type="radio" name="q{{$q.ID}}" value="{{printf "%.1s" .}}"> {{.}}</label></p>
{{end}}
{{else if eq $q.Type "true_false"}}
<p><label style="font-weight:normal"><input type="radio" name="q{{$q.ID}}" value="true"> True</label></p>
<p><label style="font-weight:normal"><input type="radio" name="q{{$q.ID}}" value="false"> False</label></p>
{{else}}
<input type="text" name="q{{$q.ID}}" placeholder="Your answer">
{{end}}
</div>
{{end}}
<input type="hidden" name="time_taken" value="0">
<button type="submit">Submit Answers</button>
</form>
{{end}}`,

	"results": `{{define "content"}}
<h1>Results: {{.Quiz.Title}}</h1>
<div class="card">
<h2 class="{{if .Passed}}correct{{else}}incorrect{{end}}">
{{printf "%.1f" .Result.Percentage}}% {{if .Passed}}(passed){{else}}(below passing score){{end}}
</h2>
<p>{{len .Result.CorrectAnswers}} of {{.Result.TotalQuestions}} correct</p>
</div>

{{range .Result.DetailedResults}}
<div class="card">
<p><strong>{{.Question}}</strong></p>
{{if .Correct}}
<p class="correct">Correct: {{.UserAnswer}}</p>
{{else}}
<p class="incorrect">Your answer: {{if .UserAnswer}}{{.UserAnswer}}{{else}}(blank){{end}}</p>
<p>Correct answer: {{.CorrectAnswer}}</p>
{{end}}
{{if .Explanation}}<p class="meta">{{.Explanation}}</p>{{end}}
</div>
{{end}}

{{if .Result.Recommendations}}
<h2>Recommendations</h2>
{{range .Result.Recommendations}}
<p>{{.}}</p>
{{end}}
{{end}}

<form method="POST" action="/adaptive">
<input type="hidden" name="subject" value="{{.Quiz.Subject}}">
<button type="submit">Take adaptive follow-up quiz</button>
</form>
{{end}}`,
}

package chat

// Quotes are returned for the motivation intent.
var Quotes = []string{
	"The future depends on what you do today. Keep going! 💪",
	"Success is the sum of small efforts repeated day in and day out. ✨",
	"Don't watch the clock; do what it does. Keep going! ⏰",
	"The expert in anything was once a beginner. You've got this! 🌟",
	"Your only limit is your mind. Push through! 🚀",
	"Dream big, work hard, stay focused! 🎯",
}

// SuggestedPrompts are offered to users who do not know what to ask.
var SuggestedPrompts = []string{
	"Help me plan my study schedule",
	"Give me a motivational quote",
	"Remind me of upcoming deadlines",
	"Summarize today's tasks",
	"Generate a timetable for tomorrow",
	"How can I improve my productivity?",
	"Give me study tips for exams",
	"Help me with time management",
}

var fallbacks = []string{
	"That's an interesting question! 🤔 I'm here to help you with study planning, motivation, reminders, and productivity tips. Could you tell me more about what you'd like to work on?",
	"I'd love to help you with that! 😊 I specialize in study planning, motivation, task management, and productivity. What specific area would you like to focus on today?",
	"Great question! 💡 I'm your study companion, so I can help with scheduling, reminders, motivation, study tips, and keeping you organized. What would be most helpful right now?",
}

const (
	welcomeText = "Hey %s! 👋 I'm your AI study companion. I'm here to help you stay productive, motivated, and organized. How can I assist you today?"
	headsUpText = "📅 Quick heads up! You have %d upcoming %s: %s. Stay on top of your goals! 🎯"
	troubleText = "Sorry, I'm having trouble thinking right now! 😅 Please try again in a moment."

	allCaughtUpText = "You're all caught up! 🎉 No upcoming deadlines right now. Great job staying organized!"
	deadlinesText   = "Here are your upcoming deadlines:\n\n%s\n\nYou've got this! 💪"

	summaryText = "📊 Here's your task summary:\n\n✅ Completed: %d\n⏳ Pending: %d\n⚠️ Overdue: %d\n📝 Total: %d\n\nKeep up the great work! %s"

	scheduleText = "📅 Here's a study planning framework:\n\n" +
		"🌅 Morning (9-12 PM): Deep work & complex subjects\n" +
		"🌞 Afternoon (1-4 PM): Review & practice problems\n" +
		"🌆 Evening (6-8 PM): Light reading & planning\n\n" +
		"💡 Pro tips:\n" +
		"• Use 25-min focused sessions (Pomodoro)\n" +
		"• Take 5-min breaks between sessions\n" +
		"• Plan your most important task first\n" +
		"• Review your progress daily\n\n" +
		"Would you like me to help you create a specific schedule?"

	productivityText = "🚀 Here are my top productivity tips:\n\n" +
		"1. 🎯 Start with your most important task\n" +
		"2. ⏰ Use time-blocking for focused work\n" +
		"3. 📱 Minimize distractions (phone, social media)\n" +
		"4. 🍅 Try the Pomodoro Technique (25 min work, 5 min break)\n" +
		"5. 📝 Write down your goals daily\n" +
		"6. 🌙 Get enough sleep (7-8 hours)\n" +
		"7. 💧 Stay hydrated and take breaks\n\n" +
		"Remember: Progress over perfection! 💪"

	timeManagementText = "⏰ Time Management Strategies:\n\n" +
		"🎯 Priority Matrix:\n" +
		"• Urgent + Important = Do first\n" +
		"• Important + Not Urgent = Schedule\n" +
		"• Urgent + Not Important = Delegate\n" +
		"• Neither = Eliminate\n\n" +
		"📅 Daily Planning:\n" +
		"• Plan your day the night before\n" +
		"• Block time for deep work\n" +
		"• Leave buffer time between tasks\n" +
		"• Review and adjust regularly\n\n" +
		"You're taking the right steps by asking! 🌟"

	examText = "📚 Study Tips for Success:\n\n" +
		"🧠 Active Learning:\n" +
		"• Teach concepts to someone else\n" +
		"• Create mind maps & flashcards\n" +
		"• Practice with past papers\n" +
		"• Form study groups\n\n" +
		"📖 Study Techniques:\n" +
		"• Spaced repetition for memory\n" +
		"• Active recall over re-reading\n" +
		"• Mix different subjects (interleaving)\n" +
		"• Take regular breaks\n\n" +
		"🎯 Exam Prep:\n" +
		"• Start early, avoid cramming\n" +
		"• Create a study schedule\n" +
		"• Practice under timed conditions\n" +
		"• Get enough sleep before exams\n\n" +
		"You've got this! 💪"

	greetingText  = "Hello %s! 😊 Great to see you! How's your day going? I'm here to help you stay productive and motivated. What would you like to work on today?"
	wellbeingText = "I'm doing great, thanks for asking! 😊 I'm energized and ready to help you crush your goals today! How are YOU feeling? Ready to tackle some productive work together? 💪✨"
)

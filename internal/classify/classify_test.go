package classify_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"forgepulse.app/tracker/internal/classify"
	"forgepulse.app/tracker/internal/model"
)

var _ = Describe("Classifier", func() {
	var classifier *classify.Classifier

	BeforeEach(func() {
		classifier = classify.NewClassifier(nil)
	})

	DescribeTable("maps (type, action) pairs to categories",
		func(eventType, action string, want model.Category) {
			Expect(classifier.Classify(eventType, action)).To(Equal(want))
		},
		Entry("opened issue", "IssuesEvent", "opened", model.CategoryIssueOpened),
		Entry("closed issue", "IssuesEvent", "closed", model.CategoryIssueClosed),
		Entry("other issue action", "IssuesEvent", "labeled", model.CategoryIssueTouched),
		Entry("issue with empty action", "IssuesEvent", "", model.CategoryIssueTouched),
		Entry("opened pull request", "PullRequestEvent", "opened", model.CategoryPROpened),
		Entry("closed pull request", "PullRequestEvent", "closed", model.CategoryPRClosed),
		Entry("synchronized pull request", "PullRequestEvent", "synchronize", model.CategoryPRTouched),
		Entry("issue comment", "IssueCommentEvent", "created", model.CategoryComment),
		Entry("commit comment", "CommitCommentEvent", "created", model.CategoryComment),
		Entry("review comment", "PullRequestReviewCommentEvent", "created", model.CategoryReviewedPR),
		Entry("push", "PushEvent", "", model.CategoryPushed),
		Entry("create ref", "CreateEvent", "", model.CategoryCreated),
		Entry("delete ref", "DeleteEvent", "", model.CategoryDeleted),
		Entry("release", "ReleaseEvent", "published", model.CategoryReleased),
		Entry("wiki edit", "GollumEvent", "", model.CategoryWikiEdit),
		Entry("fork", "ForkEvent", "", model.CategoryForked),
		Entry("unknown type", "UnknownEvent", "whatever", model.CategoryDefault),
		Entry("empty type", "", "", model.CategoryDefault),
	)

	It("never fails on arbitrary input", func() {
		Expect(classifier.Classify("WatchEvent", "started")).To(Equal(model.CategoryDefault))
	})

	Describe("with an override hook", func() {
		It("lets the override replace the table result", func() {
			classifier = classify.NewClassifier(func(category model.Category, eventType, action string) model.Category {
				if eventType == "PushEvent" {
					return model.CategoryDefault
				}
				return category
			})

			Expect(classifier.Classify("PushEvent", "")).To(Equal(model.CategoryDefault))
			Expect(classifier.Classify("ForkEvent", "")).To(Equal(model.CategoryForked))
		})
	})
})

package usecase

import (
	"fmt"
	"strings"

	"github.com/lawbotvn/lawbot/internal/core/domain"
)

const condensePromptTemplate = `Dựa vào lịch sử trò chuyện dưới đây và câu hỏi tiếp theo, hãy viết lại câu hỏi tiếp theo thành một câu hỏi độc lập, đầy đủ ngữ cảnh, bằng tiếng Việt. Chỉ trả về câu hỏi độc lập, không thêm bất kỳ nội dung nào khác.

Lịch sử trò chuyện:
%s

Câu hỏi tiếp theo: %s

Câu hỏi độc lập:`

const answerPromptTemplate = `Bạn là LawBot, một trợ lý AI chuyên tư vấn về Luật Giao thông đường bộ Việt Nam. Hãy trả lời câu hỏi của người dùng dựa trên phần NGỮ CẢNH được cung cấp.

QUY TẮC BẮT BUỘC:
1. Chỉ sử dụng thông tin trong phần NGỮ CẢNH để trả lời. Tuyệt đối không tự suy diễn hay bịa đặt thông tin.
2. Nếu NGỮ CẢNH không chứa thông tin để trả lời, hãy trả lời đúng nguyên văn câu sau: "%s"
3. Khi trả lời, hãy trích dẫn rõ điều luật và văn bản pháp lý liên quan (ví dụ: "Theo Điều 5, Nghị định 100/2019/NĐ-CP...").
4. Trả lời bằng tiếng Việt, rõ ràng, mạch lạc và dễ hiểu.

NGỮ CẢNH:
%s

Câu hỏi: %s

Trả lời:`

const metaPromptTemplate = `Bạn là LawBot, một trợ lý AI chuyên về Luật Giao thông đường bộ Việt Nam. Người dùng đang hỏi một câu về chính cuộc trò chuyện này, không phải về luật. Hãy trả lời ngắn gọn, thân thiện, bằng tiếng Việt, dựa trên lịch sử trò chuyện dưới đây.

Lịch sử trò chuyện:
%s

Câu hỏi: %s

Trả lời:`

func condensePrompt(question string, history []domain.Turn) string {
	return fmt.Sprintf(condensePromptTemplate, formatHistory(history), question)
}

func answerPrompt(question string, passages []domain.Passage) string {
	var sb strings.Builder
	for i, p := range passages {
		if i > 0 {
			sb.WriteString("\n\n---\n\n")
		}
		sb.WriteString(fmt.Sprintf("[Nguồn: %s, %s, Điều %s]\n", p.DocumentNumber, p.SourceFile, p.ArticleNumber))
		sb.WriteString(p.Content)
	}
	return fmt.Sprintf(answerPromptTemplate, notFoundText, sb.String(), question)
}

func metaPrompt(question string, history []domain.Turn) string {
	return fmt.Sprintf(metaPromptTemplate, formatHistory(history), question)
}

func formatHistory(history []domain.Turn) string {
	var sb strings.Builder
	for i, turn := range history {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Người dùng: ")
		sb.WriteString(turn.Human)
		sb.WriteString("\nLawBot: ")
		sb.WriteString(turn.AI)
	}
	return sb.String()
}
